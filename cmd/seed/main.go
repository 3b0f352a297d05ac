// Command seed loads a CSV of baseline summary rows into the MongoDB
// baseline collection so the service can merge them at read time.
//
// Usage:
//
//	MONGODB_URI=... MONGODB_DATABASE=pathwise seed -csv users.csv [-drop]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/pathwise/pathwise/internal/database"
	"github.com/pathwise/pathwise/internal/summary"
)

func main() {
	csvPath := flag.String("csv", "", "path to the baseline CSV (required)")
	collection := flag.String("collection", "baseline_users", "target collection")
	drop := flag.Bool("drop", false, "drop the collection before seeding")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	uri := os.Getenv("MONGODB_URI")
	dbName := os.Getenv("MONGODB_DATABASE")
	if uri == "" || dbName == "" {
		log.Fatal("MONGODB_URI and MONGODB_DATABASE must be set")
	}

	rows, err := summary.NewCSVBaseline(*csvPath).Load(context.Background())
	if err != nil {
		log.Fatalf("read %s: %v", *csvPath, err)
	}
	if len(rows) == 0 {
		log.Fatalf("no rows in %s", *csvPath)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client, err := database.ConnectMongo(ctx, uri, 10*time.Second)
	if err != nil {
		log.Fatalf("connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	col := client.Database(dbName).Collection(*collection)
	if *drop {
		if err := col.Drop(ctx); err != nil {
			log.Fatalf("drop %s: %v", *collection, err)
		}
	}

	docs := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, row)
	}
	res, err := col.InsertMany(ctx, docs)
	if err != nil {
		log.Fatalf("insert: %v", err)
	}
	count, err := col.CountDocuments(ctx, bson.D{})
	if err != nil {
		log.Fatalf("count: %v", err)
	}
	log.Printf("seeded %d rows into %s.%s (now %d total)", len(res.InsertedIDs), dbName, *collection, count)
}
