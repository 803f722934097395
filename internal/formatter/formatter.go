// package formatter provides functions to export products and grocery lists to various formats (CSV, Markdown, plain text)
// and to render them as terminal tables
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/grocery/internal/models"
)

const priceDigits = 2

func formatPrice(p models.Product) string {
	return p.Price.StringFixed(priceDigits)
}

// ProductsToCSV converts products to CSV format with columns: ID, Name, Stock, ShelfLife, Price
func ProductsToCSV(products []*models.Product) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Stock", "ShelfLife", "Price"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, p := range products {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			strconv.Itoa(p.Stock),
			p.ShelfLife.String(),
			formatPrice(*p),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// GroceryListToCSV converts a grocery list to CSV format with columns: ItemID, ProductID, Product, Amount, Price, Total
func GroceryListToCSV(list *models.GroceryList) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ItemID", "ProductID", "Product", "Amount", "Price", "Total"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, line := range list.Lines {
		price := ""
		if line.Product != nil {
			price = formatPrice(*line.Product)
		}
		record := []string{
			strconv.FormatInt(line.Item.ID, 10),
			strconv.FormatInt(line.Item.ProductID, 10),
			line.ProductName(),
			strconv.Itoa(line.Item.Amount),
			price,
			line.Total().StringFixed(priceDigits),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// GroceryListToMarkdown converts a grocery list to Markdown format
func GroceryListToMarkdown(list *models.GroceryList) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Grocery list %d\n\n", list.ID)
	fmt.Fprintf(&buf, "**Items**: %d\n", len(list.Lines))
	fmt.Fprintf(&buf, "**Total**: %s\n\n", list.Total().StringFixed(priceDigits))

	buf.WriteString("## Items\n\n")
	for i, line := range list.Lines {
		fmt.Fprintf(&buf, "%d. %s × %d [%s]\n", i+1, line.ProductName(), line.Item.Amount, line.Total().StringFixed(priceDigits))
	}

	return buf.Bytes(), nil
}

// GroceryListToText converts a grocery list to plain text format
func GroceryListToText(list *models.GroceryList) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Grocery list: %d\n", list.ID)
	fmt.Fprintf(&buf, "Items: %d\n\n", len(list.Lines))

	for i, line := range list.Lines {
		fmt.Fprintf(&buf, "%d. %dx %s\n", i+1, line.Item.Amount, line.ProductName())
	}

	fmt.Fprintf(&buf, "\nTotal: %s\n", list.Total().StringFixed(priceDigits))
	return buf.Bytes(), nil
}

// WriteCSVExport exports a grocery list to CSV.
//
// Defaults to grocery_list_{id}.csv as the filename.
func WriteCSVExport(list *models.GroceryList, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("grocery_list_%d.csv", list.ID)
	}

	data, err := GroceryListToCSV(list)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}
	return path, nil
}

// WriteMarkdownExport exports a grocery list to Markdown in a dedicated directory.
//
// Directory name defaults to grocery_list_{id}. Creates {dir}/README.md
func WriteMarkdownExport(list *models.GroceryList, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = fmt.Sprintf("grocery_list_%d", list.ID)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := GroceryListToMarkdown(list)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}
	return mdFile, nil
}

// WriteTextExport exports a grocery list to plain text.
//
// Defaults to grocery_list_{id}.txt as the filename.
func WriteTextExport(list *models.GroceryList, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("grocery_list_%d.txt", list.ID)
	}

	data, err := GroceryListToText(list)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}
	return path, nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.border).
		Headers(headers...)
}

// RenderProducts renders products as a styled table. Out of stock rows are highlighted.
func RenderProducts(products []*models.Product) string {
	if len(products) == 0 {
		return styles.muted.Render("No products.")
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			strconv.Itoa(p.Stock),
			p.ShelfLife.String(),
			formatPrice(*p),
		})
	}

	t := newTable("ID", "Name", "Stock", "Shelf life", "Price").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.header
			case products[row].Stock == 0:
				return styles.cell.Inherit(styles.warn)
			default:
				return styles.cell
			}
		})

	return styles.title.Render("Products") + "\n" + t.String()
}

// RenderGroceryList renders a grocery list as a styled table with its total.
func RenderGroceryList(list *models.GroceryList) string {
	var sb strings.Builder
	sb.WriteString(styles.title.Render(fmt.Sprintf("Grocery list %d", list.ID)))
	sb.WriteString("\n")

	if len(list.Lines) == 0 {
		sb.WriteString(styles.muted.Render("No items."))
		return sb.String()
	}

	rows := make([][]string, 0, len(list.Lines))
	for _, line := range list.Lines {
		rows = append(rows, []string{
			strconv.FormatInt(line.Item.ID, 10),
			line.ProductName(),
			strconv.Itoa(line.Item.Amount),
			line.Total().StringFixed(priceDigits),
		})
	}

	t := newTable("ID", "Product", "Amount", "Total").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.header
			case list.Lines[row].Product == nil:
				return styles.cell.Inherit(styles.err)
			default:
				return styles.cell
			}
		})

	sb.WriteString(t.String())
	sb.WriteString("\n")
	sb.WriteString(styles.ok.Render("Total: " + list.Total().StringFixed(priceDigits)))
	return sb.String()
}
