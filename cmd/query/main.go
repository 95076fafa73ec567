// Package main is a small diagnostic client for the raw SQL endpoint.
//
// It logs in with the seeded admin credentials, runs a fixed catalog query
// through POST /api/query, and prints the rows as a fixed-width table. The
// server must already be running (API_BASE_URL, localhost:8001 by default)
// and seeded.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/ecommerce-api/internal/config"
	"github.com/sakif/ecommerce-api/internal/model"
)

// catalogQuery is the fixed query this tool runs: every live product,
// name-ascending, with display-friendly column aliases.
const catalogQuery = `
SELECT
    product_name AS name,
    price,
    availability_status AS availability,
    stock_quantity,
    category,
    description
FROM products
WHERE deleted_at IS NULL
ORDER BY product_name ASC`

// Table layout: 20-character cells, at most 10 rows printed.
const (
	cellWidth = 20
	maxRows   = 10
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Configuration error: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: 30 * time.Second}

	fmt.Println("SQL Query Tool")
	fmt.Println(strings.Repeat("=", 50))

	token, err := loginAsAdmin(client, cfg.APIBaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Login failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Logged in as admin")

	fmt.Println("\nExecuting query...")
	fmt.Println(catalogQuery)
	fmt.Println("\n" + strings.Repeat("=", 50))

	resp, err := executeQuery(client, cfg.APIBaseURL, token, catalogQuery)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Query failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✓ Query successful! Found %d rows\n\n", resp.RowCount)
	if resp.RowCount == 0 {
		fmt.Println("No results found.")
		return
	}

	printTable(resp.Results, resp.RowCount)
}

// loginAsAdmin exchanges the seeded admin credentials for a bearer token.
func loginAsAdmin(client *http.Client, baseURL string) (string, error) {
	body := `{"username":"admin","password":"password"}`
	res, err := client.Post(baseURL+"/api/login", "application/json",
		bytes.NewBufferString(body))
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d — did you run cmd/seed first?", res.StatusCode)
	}

	var token model.TokenResponse
	if err := json.NewDecoder(res.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decoding login response: %w", err)
	}
	return token.AccessToken, nil
}

// executeQuery posts raw SQL to the admin endpoint.
func executeQuery(client *http.Client, baseURL, token, query string) (*model.QueryResponse, error) {
	payload, err := json.Marshal(model.QueryRequest{Query: query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/query",
		bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(res.Body).Decode(&errBody); err == nil && errBody.Message != "" {
			return nil, fmt.Errorf("status %d: %s", res.StatusCode, errBody.Message)
		}
		return nil, fmt.Errorf("status %d", res.StatusCode)
	}

	var qr model.QueryResponse
	if err := json.NewDecoder(res.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("decoding query response: %w", err)
	}
	return &qr, nil
}

// printTable renders rows as fixed-width columns. JSON objects carry no
// column order, so headers are printed sorted — stable across runs.
func printTable(results []map[string]any, rowCount int) {
	headers := make([]string, 0, len(results[0]))
	for h := range results[0] {
		headers = append(headers, h)
	}
	sort.Strings(headers)

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = pad(h)
	}
	fmt.Println(strings.Join(cells, " | "))
	fmt.Println(strings.Repeat("-", len(headers)*(cellWidth+3)))

	shown := results
	if len(shown) > maxRows {
		shown = shown[:maxRows]
	}
	for _, row := range shown {
		for i, h := range headers {
			cells[i] = pad(formatValue(row[h]))
		}
		fmt.Println(strings.Join(cells, " | "))
	}

	if rowCount > maxRows {
		fmt.Printf("\n... and %d more rows\n", rowCount-maxRows)
	}
}

// pad truncates to the cell width, then left-aligns. Truncation counts
// runes, not bytes — slicing a multibyte product name mid-rune would print
// a mangled trailing character.
func pad(s string) string {
	if r := []rune(s); len(r) > cellWidth {
		s = string(r[:cellWidth])
	}
	return fmt.Sprintf("%-*s", cellWidth, s)
}

// formatValue renders a decoded JSON value for display. Numbers come out of
// encoding/json as float64; 'g' formatting keeps integers looking like
// integers ("10", not "10.000000").
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
