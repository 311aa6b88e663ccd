package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var fetchJSON bool

var fetchCmd = &cobra.Command{
	Use:   "fetch [id]",
	Short: "Fetch a document by ID",
	Long: `Retrieves the complete content and metadata of a single document
from the vector store. The ID is the file identifier shown by search
results (file_xxx).`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "output the document as JSON")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	doc, err := retrievalService.Fetch(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if fetchJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("%s (%s)\n", doc.Title, doc.ID)
	if doc.URL != "" {
		cmd.Printf("URL: %s\n", doc.URL)
	}
	if len(doc.Metadata) > 0 {
		cmd.Println("Metadata:")
		for k, v := range doc.Metadata {
			cmd.Printf("  %s: %v\n", k, v)
		}
	}
	cmd.Println()
	cmd.Println(doc.Text)

	return nil
}
