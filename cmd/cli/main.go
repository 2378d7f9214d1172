package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/iheb2525/boutique/internal/models"
	"github.com/iheb2525/boutique/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedCount := seedCmd.Int("count", 8, "Number of sample products to create")
	seedData := seedCmd.String("data", "", "Path to the products file (defaults to DATA_PATH or ./data/products.json)")

	hashCmd := flag.NewFlagSet("hash-password", flag.ExitOnError)
	hashPassword := hashCmd.String("password", "", "Password to hash for ADMIN_PASSWORD_HASH")

	if len(os.Args) < 2 {
		fmt.Println("expected 'seed' or 'hash-password' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		seedProducts(*seedData, *seedCount)
	case "hash-password":
		hashCmd.Parse(os.Args[2:])
		if *hashPassword == "" {
			fmt.Println("password is required")
			hashCmd.PrintDefaults()
			os.Exit(1)
		}
		printHash(*hashPassword)
	default:
		fmt.Println("expected 'seed' or 'hash-password' subcommand")
		os.Exit(1)
	}
}

// seedProducts fills the catalog with fake products so the storefront has
// something to show on a fresh checkout of the repo.
func seedProducts(dataPath string, count int) {
	if dataPath == "" {
		dataPath = os.Getenv("DATA_PATH")
	}
	if dataPath == "" {
		dataPath = "./data/products.json"
	}

	catalog, err := store.NewCatalog(dataPath)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}

	for i := 0; i < count; i++ {
		product := models.Product{
			Name:        gofakeit.ProductName(),
			Description: gofakeit.ProductDescription(),
			Price:       gofakeit.Price(5, 200),
			Stock:       gofakeit.Number(0, 50),
		}
		created, err := catalog.Create(product)
		if err != nil {
			log.Fatalf("Failed to create product: %v", err)
		}
		fmt.Printf("Created %q (%s)\n", created.Name, created.ID)
	}

	fmt.Printf("Seeded %d products into %s\n", count, dataPath)
}

func printHash(password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Println(string(hash))
}
