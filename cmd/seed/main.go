package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"github.com/joaomluz/desafio-teddy-open-finance/internal/config"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/db"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/model"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/repository"
)

type seedClient struct {
	name         string
	salary       string
	companyValue string
}

// Demo fixtures for local development.
var seedClients = []seedClient{
	{"Eduardo Silva", "3500.00", "120000.00"},
	{"Ana Costa", "5200.50", "450000.00"},
	{"Carlos Pereira", "2800.00", "85000.00"},
	{"Mariana Souza", "7100.75", "980000.00"},
	{"João Oliveira", "4300.00", "230000.00"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Client{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo := repository.NewClientRepository(gormDB)
	ctx := context.Background()

	created := 0
	for _, item := range seedClients {
		salary, err := decimal.NewFromString(item.salary)
		if err != nil {
			log.Printf("Skipping %s with invalid salary: %s", item.name, item.salary)
			continue
		}
		companyValue, err := decimal.NewFromString(item.companyValue)
		if err != nil {
			log.Printf("Skipping %s with invalid company value: %s", item.name, item.companyValue)
			continue
		}

		client := &model.Client{
			Name:         item.name,
			Salary:       salary,
			CompanyValue: companyValue,
		}
		if err := repo.Create(ctx, client); err != nil {
			log.Printf("Failed to create %s: %v", item.name, err)
			continue
		}
		created++
	}

	log.Printf("Seed completed: %d clients created", created)
}
