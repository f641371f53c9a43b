package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	apimiddleware "github.com/fintrack/budgetd/internal/adapter/http/middleware"
)

var (
	baseURL string
	timeout time.Duration
	userID  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "budgetd-cli",
		Short: "Budgetd CLI tool",
		Long:  `A command line interface for interacting with the budgetd API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the budgetd API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "User ID to act as")

	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "Budget operations",
	}
	budgetCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List budgets",
			Run: func(cmd *cobra.Command, args []string) {
				request(http.MethodGet, "/api/v1/budgets/", nil)
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Get a budget",
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				request(http.MethodGet, "/api/v1/budgets/"+args[0], nil)
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a budget",
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				request(http.MethodDelete, "/api/v1/budgets/"+args[0], nil)
			},
		},
		&cobra.Command{
			Use:   "changelog <id>",
			Short: "Show a budget's change history",
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				request(http.MethodGet, "/api/v1/budgets/"+args[0]+"/changelog", nil)
			},
		},
	)
	rootCmd.AddCommand(budgetCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "progress",
		Short: "Show budget progress, summary and health score",
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodGet, "/api/v1/budgets/progress", nil)
		},
	})

	billsCmd := &cobra.Command{
		Use:   "bills",
		Short: "Recurring bill operations",
	}
	billsCmd.AddCommand(
		&cobra.Command{
			Use:   "generate",
			Short: "Backfill missed recurring instances",
			Run: func(cmd *cobra.Command, args []string) {
				request(http.MethodPost, "/api/v1/bills/generate", nil)
			},
		},
		&cobra.Command{
			Use:   "pay <id>",
			Short: "Mark a bill paid",
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				request(http.MethodPost, "/api/v1/bills/"+args[0]+"/pay", nil)
			},
		},
	)
	rootCmd.AddCommand(billsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func request(method, path string, body []byte) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(apimiddleware.UserIDHeader, userID)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	if len(respBody) == 0 {
		fmt.Printf("OK (Status: %d)\n", resp.StatusCode)
		return
	}

	var pretty any
	if err := json.Unmarshal(respBody, &pretty); err != nil {
		fmt.Println(string(respBody))
		return
	}
	printJSON(pretty)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
