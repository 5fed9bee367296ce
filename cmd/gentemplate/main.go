// Command gentemplate generates a sample product export workbook in the
// seller-tool layout the importer accepts.
// Usage: go run cmd/gentemplate/main.go
package main

import (
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	f := excelize.NewFile()

	// Rename Sheet1 to Products
	if err := f.SetSheetName("Sheet1", "Products"); err != nil {
		log.Fatal(err)
	}

	// Sellers export with a title row above the real header, the way
	// the export tool emits it. The importer recognizes the title row
	// by its Product- prefix and reads the header from row 2.
	if err := f.SetCellValue("Products", "A1", "Product-20260901-export"); err != nil {
		log.Fatal(err)
	}

	headers := []string{
		"ASIN", "商品标题", "价格($)", "大类目", "小类目", "月销量",
		"月销售额($)", "评分数", "评分", "上架时间", "配送方式",
		"卖家所属地", "商品主图", "商品详情页链接",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Products", cell, h); err != nil {
			log.Fatal(err)
		}
	}

	rows := [][]string{
		{
			"B0EXAMPLE1", "Cotton Tablecloth 60x84", "19.99", "Home & Kitchen",
			"Table cloths", "150", "2998.50", "320", "4.5", "2024-03-01",
			"FBA", "CN", "https://images.example.com/B0EXAMPLE1.jpg",
			"https://www.amazon.com/dp/B0EXAMPLE1",
		},
		{
			"B0EXAMPLE2", "Linen Napkin Set of 12", "24.99", "Home & Kitchen",
			"Napkins", "85", "2124.15", "96", "4.2", "2023-11-15",
			"FBM", "US", "https://images.example.com/B0EXAMPLE2.jpg",
			"https://www.amazon.com/dp/B0EXAMPLE2",
		},
		{
			"B0EXAMPLE3", "LED Desk Lamp", "45.00", "Home & Kitchen",
			"Lamps & Shades", "410", "18450", "1240", "4.7", "2022-06-20",
			"FBA", "US", "", "",
		},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+3)
			if err != nil {
				log.Fatal(err)
			}
			if err := f.SetCellValue("Products", cell, v); err != nil {
				log.Fatal(err)
			}
		}
	}

	// Create Instructions sheet
	if _, err := f.NewSheet("Instructions"); err != nil {
		log.Fatal(err)
	}
	instructions := []string{
		"Column Descriptions:",
		"",
		"ASIN - Required. Rows without an ASIN are dropped on import",
		"商品标题 - Product title",
		"价格($) - Price in USD; currency symbols and commas are tolerated",
		"大类目 - Main category",
		"小类目 - Sub-category; used for blacklist matching",
		"月销量 - Monthly sales count",
		"月销售额($) - Monthly revenue in USD",
		"评分数 - Review count",
		"评分 - Average rating (0-5)",
		"上架时间 - Launch date (e.g., 2024-03-01)",
		"配送方式 - Shipping method (FBA/FBM)",
		"卖家所属地 - Seller location",
		"商品主图 - Main image URL",
		"商品详情页链接 - Product detail page URL",
	}
	for i, line := range instructions {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Instructions", cell, line); err != nil {
			log.Fatal(err)
		}
	}

	// Ensure examples directory exists
	if err := os.MkdirAll("examples", 0755); err != nil {
		log.Fatal(err)
	}

	// Save the file
	if err := f.SaveAs("examples/product-export-sample.xlsx"); err != nil {
		log.Fatal(err)
	}
	log.Println("Created examples/product-export-sample.xlsx")
}
