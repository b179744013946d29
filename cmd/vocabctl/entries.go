package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

func newClient() *resty.Client {
	return resty.New().
		SetBaseURL(apiFlag).
		SetAuthToken(tokenFlag).
		SetTimeout(30 * time.Second)
}

func printResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	_, _ = fmt.Fprintln(os.Stdout, resp.String())
	return nil
}

func init() {
	// capture
	var term, lang, context string
	captureCmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture a term (creates or merges into an existing entry)",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"term": term}
			if lang != "" {
				payload["lang"] = lang
			}
			if context != "" {
				payload["context"] = context
			}
			resp, err := newClient().R().SetBody(payload).Post("/api/vocab/entries")
			return printResponse(resp, err)
		},
	}
	captureCmd.Flags().StringVarP(&term, "term", "w", "", "Term to capture (required)")
	captureCmd.Flags().StringVarP(&lang, "lang", "l", "", "Language code (default en)")
	captureCmd.Flags().StringVarP(&context, "context", "c", "", "Where the term was seen")
	_ = captureCmd.MarkFlagRequired("term")
	rootCmd.AddCommand(captureCmd)

	// list
	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := newClient().R()
			if limit > 0 {
				req.SetQueryParam("limit", fmt.Sprintf("%d", limit))
			}
			resp, err := req.Get("/api/vocab/entries")
			return printResponse(resp, err)
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of entries")
	rootCmd.AddCommand(listCmd)

	// search
	var query string
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search entries by term, context or translation",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().SetQueryParam("q", query).Get("/api/vocab/entries")
			return printResponse(resp, err)
		},
	}
	searchCmd.Flags().StringVarP(&query, "query", "q", "", "Search text (required)")
	_ = searchCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(searchCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete ENTRY_ID",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().Delete("/api/vocab/entries/" + args[0])
			return printResponse(resp, err)
		},
	}
	rootCmd.AddCommand(deleteCmd)
}
