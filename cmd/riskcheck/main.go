// Command riskcheck evaluates transactions against the risk engine.
//
// Default mode scores a single transaction, read from flags, using the
// Postgres-backed history providers. With -scenarios it runs a canned
// battery of fraud scenarios through the engine with in-memory providers
// instead, which needs no database and is the quickest way to sanity-check
// a model artifact.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"vigil/internal/config"
	"vigil/internal/models"
	"vigil/internal/repositories"
	"vigil/internal/repositories/cache"
	"vigil/internal/services/risk"
)

func main() {
	var (
		amount      = flag.Float64("amount", 0, "transaction amount")
		to          = flag.String("to", "", "destination payment address")
		lat         = flag.Float64("lat", 0, "request latitude (0 = unknown)")
		lon         = flag.Float64("lon", 0, "request longitude (0 = unknown)")
		device      = flag.String("device", "", "device identifier")
		useRedisLoc = flag.Bool("redis-location", false, "read last locations from redis instead of postgres")
		scenarios   = flag.Bool("scenarios", false, "run the canned scenario battery and exit")
	)
	flag.Parse()

	config.LoadEnv()

	classifier, err := risk.LoadClassifier(config.GetEnv("RISK_MODEL_PATH", "model.json"))
	if err != nil {
		log.Printf("classifier unavailable, engine will run in fallback mode: %v", err)
		classifier = nil
	}

	engineConfig := risk.Config{
		HighValueMin:         config.GetFloatEnv("RISK_HIGH_VALUE_MIN", 0),
		TravelMinDistanceKm:  config.GetFloatEnv("RISK_TRAVEL_MIN_KM", 0),
		TravelMinVelocityKmh: config.GetFloatEnv("RISK_TRAVEL_MIN_KMH", 0),
		NightAmountMin:       config.GetFloatEnv("RISK_NIGHT_AMOUNT_MIN", 0),
		FallbackLimit:        config.GetFloatEnv("RISK_FALLBACK_LIMIT", 0),
	}

	if *scenarios {
		runScenarios(classifier, engineConfig)
		return
	}

	if *to == "" || *amount <= 0 {
		log.Fatal("-to and a positive -amount are required")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if repositories.DB != nil {
			sqlDB, err := repositories.DB.DB()
			if err == nil {
				sqlDB.Close()
			}
		}
	}()

	history := repositories.NewHistoryRepository(repositories.DB)
	var locations risk.LastLocationProvider = history
	if *useRedisLoc {
		client := cache.NewRedisClient(&cache.RedisConfig{
			Host:     config.GetEnv("REDIS_HOST", "localhost"),
			Port:     config.GetEnv("REDIS_PORT", "6379"),
			Password: config.GetEnv("REDIS_PASSWORD", ""),
			DB:       config.GetIntEnv("REDIS_DB", 0),
		})
		defer client.Close()
		locations = cache.NewLocationStore(client, 0)
	}

	svc := risk.NewService(history, locations, classifier, engineConfig, nil)

	verdict, err := svc.Evaluate(context.Background(), models.TransactionRequest{
		Amount:         *amount,
		PaymentAddress: *to,
		Latitude:       *lat,
		Longitude:      *lon,
		DeviceID:       *device,
	})
	if err != nil {
		log.Fatalf("Could not evaluate risk: %v", err)
	}

	printVerdict(fmt.Sprintf("%s %.2f", *to, *amount), verdict)
}

// scenario is one canned evaluation with pre-seeded history.
type scenario struct {
	name    string
	req     models.TransactionRequest
	stats   models.HistoricalStats
	lastLoc *models.LastKnownLocation
}

func runScenarios(classifier risk.Classifier, cfg risk.Config) {
	fiveMinAgo := time.Now().Add(-5 * time.Minute).Format("2006-01-02 15:04:05")

	battery := []scenario{
		{
			name: "normal transaction",
			req:  models.TransactionRequest{Amount: 500, PaymentAddress: "user@upi"},
			stats: models.HistoricalStats{
				AvgTransactionAmount: 450, TransactionFrequency: 12,
			},
		},
		{
			name: "first-ever transaction, high amount",
			req:  models.TransactionRequest{Amount: 100000, PaymentAddress: "richuser@upi"},
		},
		{
			name: "amount dwarfs history",
			req:  models.TransactionRequest{Amount: 60000, PaymentAddress: "smalltime@upi"},
			stats: models.HistoricalStats{
				AvgTransactionAmount: 110, TransactionFrequency: 3,
			},
		},
		{
			name: "location jump minutes after last payment",
			req: models.TransactionRequest{
				Amount: 2000, PaymentAddress: "traveller@upi",
				Latitude: 19.0760, Longitude: 72.8777, // Mumbai
			},
			stats: models.HistoricalStats{
				AvgTransactionAmount: 1800, TransactionFrequency: 30,
			},
			lastLoc: &models.LastKnownLocation{
				Latitude: 28.6139, Longitude: 77.2090, // Delhi
				Timestamp: fiveMinAgo,
			},
		},
	}

	history := make(scenarioHistory)
	locations := make(scenarioLocations)
	for _, sc := range battery {
		history[sc.req.PaymentAddress] = sc.stats
		if sc.lastLoc != nil {
			locations[sc.req.PaymentAddress] = sc.lastLoc
		}
	}

	svc := risk.NewService(history, locations, classifier, cfg, nil)
	for _, sc := range battery {
		verdict, err := svc.Evaluate(context.Background(), sc.req)
		if err != nil {
			log.Printf("%s: could not evaluate: %v", sc.name, err)
			continue
		}
		printVerdict(sc.name, verdict)
	}
}

func printVerdict(label string, v models.RiskVerdict) {
	reason := v.Reason
	if reason == "" {
		reason = "-"
	}
	fmt.Printf("%-45s fraud=%-5t risk=%-3d %s\n", label, v.IsFraud, v.RiskScore, reason)
}

// In-memory providers backing the scenario battery.

type scenarioHistory map[string]models.HistoricalStats

func (h scenarioHistory) GetHistoricalStats(_ context.Context, paymentAddress string) (models.HistoricalStats, error) {
	return h[paymentAddress], nil
}

type scenarioLocations map[string]*models.LastKnownLocation

func (l scenarioLocations) GetLastSuccessfulTransaction(_ context.Context, paymentAddress string) (*models.LastKnownLocation, error) {
	return l[paymentAddress], nil
}
