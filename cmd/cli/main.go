package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
)

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Ticker symbol (e.g., PETR4.SA): ")
	symbol, _ := reader.ReadString('\n')
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		fmt.Println("Symbol is required.")
		return
	}

	fmt.Print("Target price (e.g., 38.50): ")
	rawPrice, _ := reader.ReadString('\n')
	target, err := strconv.ParseFloat(strings.TrimSpace(rawPrice), 64)
	if err != nil || target <= 0 {
		fmt.Println("Target price must be a positive number.")
		return
	}

	fmt.Print("Condition, ABOVE or BELOW: ")
	cond, _ := reader.ReadString('\n')
	cond = strings.ToUpper(strings.TrimSpace(cond))
	if cond != "ABOVE" && cond != "BELOW" {
		fmt.Println("Condition must be ABOVE or BELOW.")
		return
	}

	body, _ := json.Marshal(map[string]any{
		"symbol":       symbol,
		"target_price": target,
		"condition":    cond,
	})
	resp, err := http.Post(api+"/api/alerts", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Println("Error contacting API:", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		fmt.Println("Alert created! It will fire on the next check pass.")
	} else {
		fmt.Println("API returned status:", resp.Status)
	}
}
