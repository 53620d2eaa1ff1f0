package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Generates sample gzipped catalogue feeds for local development.
// Feed line format: id,name,brand,category,description,price,inventory
func main() {
	dataDir := "data/catalog"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	feeds := map[string][]string{
		"feed1.csv.gz": {
			"P001,Espresso Beans,Darkroast Co,Coffee,1kg whole espresso beans,18.50,120",
			"P002,Filter Grind,Darkroast Co,Coffee,500g medium filter grind,9.90,80",
			"P003,Ceramic Mug,Potteryline,Homeware,350ml glazed ceramic mug,12.00,200",
			"P004,French Press,Brewgear,Equipment,8-cup stainless french press,34.95,45",
		},
		"feed2.csv.gz": {
			"P005,Milk Frother,Brewgear,Equipment,Handheld battery milk frother,14.25,60",
			"P006,Cold Brew Kit,Darkroast Co,Coffee,1L cold brew starter kit,22.00,30",
			"P003,Ceramic Mug,Potteryline,Homeware,350ml glazed ceramic mug,11.50,180",
		},
	}

	for name, lines := range feeds {
		path := filepath.Join(dataDir, name)
		if err := writeFeed(path, lines); err != nil {
			log.Fatalf("Failed to write feed %s: %v", path, err)
		}
		fmt.Printf("wrote %s (%d products)\n", path, len(lines))
	}
}

func writeFeed(path string, lines []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	gw := gzip.NewWriter(file)
	defer gw.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintln(gw, line); err != nil {
			return err
		}
	}

	return nil
}
