package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"meet-importer/core/config"
	"meet-importer/feature/importer"
	"meet-importer/feature/legacy"
)

// Dumps what the importer reads from a legacy source, without contacting the meet service.
func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: debug_legacy <meet.mdb|backup.zip>")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	sources := importer.Sources{Binary: cfg.Legacy.ExportBinary, WorkDir: cfg.Legacy.WorkDir}
	exporter, err := sources.Open(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	fmt.Println("Exporting legacy tables...")
	store, err := legacy.Load(ctx, exporter)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Meet: %s (%s - %s), class %d, course %d\n",
		store.Meet.Name, store.Meet.Start, store.Meet.End, store.Meet.Class, store.Meet.Course)
	fmt.Printf("Events: %d, teams: %d, athletes: %d, entries: %d, relays: %d, relay legs: %d\n",
		len(store.Events), len(store.Teams), len(store.Athletes), len(store.Entries), len(store.Relays), len(store.RelayNames))

	for _, err := range store.Duplicates() {
		fmt.Printf("  ⚠️  %v\n", err)
	}

	// Entries whose athlete or event is missing from the export
	fmt.Println("\n=== Checking entry references ===")
	broken := 0
	for i, row := range store.Entries {
		if _, err := store.Athlete(row.AthNo); err != nil {
			broken++
			fmt.Printf("Entry row %d: %v\n", i+1, err)
		}
		if _, err := store.Event(row.EventPtr); err != nil {
			broken++
			fmt.Printf("Entry row %d: %v\n", i+1, err)
		}
	}

	fmt.Println("\n=== Checking relay rosters ===")
	for _, relay := range store.Relays {
		legs := store.Roster(relay.RelayNo)
		event, err := store.Event(relay.EventPtr)
		if err != nil {
			broken++
			fmt.Printf("Relay %d: %v\n", relay.RelayNo, err)
			continue
		}
		if event.RelayLegs > 0 && len(legs) > event.RelayLegs {
			broken++
			fmt.Printf("Relay %d: %d legs for a %d leg event\n", relay.RelayNo, len(legs), event.RelayLegs)
		}
	}

	fmt.Printf("\nBroken references: %d\n", broken)
}
