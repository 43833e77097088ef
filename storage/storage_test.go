package storage

import (
	"time"

	"fashion-etl/models"
)

func sampleRecords() []models.CleanRecord {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []models.CleanRecord{
		{Title: "product a", Price: 175840, Rating: 4.5, Colors: "Red,", Size: "M", Gender: "Men", Timestamp: ts},
		{Title: `shirt "quoted", comma`, Price: 328000, Rating: 3, Colors: "3", Size: "L", Gender: "Women", Timestamp: ts.Add(time.Minute)},
	}
}

func str(s string) *string { return &s }
