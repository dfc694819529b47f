package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/souq-labs/backend-souq/internal/catalog"
	"github.com/souq-labs/backend-souq/internal/coupon"
	"github.com/souq-labs/backend-souq/internal/pricing"
	"github.com/souq-labs/backend-souq/internal/rates"
)

// ratecheck validates the reference data files and prints a sample quote so
// operators can sanity check a rate change before deploying it.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	ratesPath := flag.String("rates", envOr("RATES_FILE", "configs/rates.yaml"), "path to the shipping rates file")
	couponsPath := flag.String("coupons", envOr("COUPONS_FILE", "configs/coupons.yaml"), "path to the coupons file")
	catalogPath := flag.String("catalog", envOr("CATALOG_FILE", "configs/catalog.yaml"), "path to the catalog file")
	destination := flag.String("dest", envOr("DEFAULT_DESTINATION", "EG"), "destination code for the sample quote")
	weight := flag.Float64("weight", 2.0, "sample parcel weight in kilograms")
	total := flag.Int64("total", 10000, "sample cart total in minor units")
	flag.Parse()

	table, err := rates.Load(*ratesPath)
	if err != nil {
		log.Fatalf("rates %s: %v", *ratesPath, err)
	}
	fmt.Printf("rates ok: %d zones, default %s\n", len(table.Zones), table.DefaultZone)

	coupons, err := coupon.Load(*couponsPath)
	if err != nil {
		log.Fatalf("coupons %s: %v", *couponsPath, err)
	}
	fmt.Printf("coupons ok: %d rules\n", coupons.Len())

	products, err := catalog.Load(*catalogPath)
	if err != nil {
		log.Fatalf("catalog %s: %v", *catalogPath, err)
	}
	fmt.Printf("catalog ok: %d products\n", products.Len())

	calc := pricing.Calculator{Rates: table}
	for _, method := range []pricing.ShippingMethod{pricing.MethodStandard, pricing.MethodExpress, pricing.MethodFree} {
		fee, err := calc.Fee(pricing.FeeInput{
			Method:      method,
			Destination: *destination,
			CartTotal:   *total,
			WeightKg:    *weight,
		})
		if err != nil {
			log.Fatalf("sample quote %s: %v", method, err)
		}
		fmt.Printf("sample %s to %s (%.1fkg, total %d): fee %d\n", method, *destination, *weight, *total, fee)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
