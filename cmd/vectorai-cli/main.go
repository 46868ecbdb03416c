package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yezz123/vectorai"
)

var (
	snapshotPath string
	indexKind    string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "vectorai-cli",
	Short: "CLI tool for the in-memory vector database core",
	Long:  `A command-line interface for creating libraries, adding chunks, searching and snapshotting a vectorai store.`,
}

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage libraries",
}

var libraryCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer saveStore(store)

		description, _ := cmd.Flags().GetString("description")
		strict, _ := cmd.Flags().GetBool("strict")

		lib, err := store.CreateLibrary(args[0], description, nil, parseIndexKind(indexKind), strict)
		if err != nil {
			return fmt.Errorf("create library: %w", err)
		}
		fmt.Printf("library %s created (kind=%s)\n", lib.ID, lib.IndexKind)
		return nil
	},
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List libraries",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		for _, lib := range store.ListLibraries() {
			fmt.Printf("%s\t%s\t%s\n", lib.ID, lib.Name, lib.IndexKind)
		}
		return nil
	},
}

var chunkCmd = &cobra.Command{
	Use:   "chunk",
	Short: "Manage chunks",
}

var chunkAddCmd = &cobra.Command{
	Use:   "add <library-id> <document-id>",
	Short: "Add a chunk to a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid library id: %w", err)
		}
		documentID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid document id: %w", err)
		}

		text, _ := cmd.Flags().GetString("text")
		vectorStr, _ := cmd.Flags().GetString("vector")
		if vectorStr == "" {
			return fmt.Errorf("--vector is required")
		}
		vector, err := parseVector(vectorStr)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer saveStore(store)

		chunks, err := store.AddChunks(libraryID, documentID, []vectorai.NewChunk{
			{Text: text, Embedding: vector},
		})
		if err != nil {
			return fmt.Errorf("add chunk: %w", err)
		}
		fmt.Printf("chunk %s added\n", chunks[0].ID)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <library-id>",
	Short: "Search a library for its nearest neighbours",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid library id: %w", err)
		}

		vectorStr, _ := cmd.Flags().GetString("vector")
		k, _ := cmd.Flags().GetInt("k")
		if vectorStr == "" {
			return fmt.Errorf("--vector is required")
		}
		query, err := parseVector(vectorStr)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}

		hits, degraded, err := store.Search(libraryID, query, k, nil)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		if degraded {
			fmt.Println("# result is degraded: fewer than k matches were found")
		}
		for _, h := range hits {
			fmt.Printf("%s\t%.6f\t%s\n", h.Chunk.ID, h.Distance, h.Chunk.Text)
		}
		return nil
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save or load a snapshot",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <path>",
	Short: "Save the store to a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		if err := store.SaveSnapshot(args[0]); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		fmt.Printf("snapshot written to %s\n", args[0])
		return nil
	},
}

var snapshotLoadCmd = &cobra.Command{
	Use:   "load <path>",
	Short: "Load the store from a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := vectorai.New(vectorai.DefaultConfig(), newLogger())
		if err := store.LoadSnapshot(args[0]); err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		fmt.Printf("snapshot loaded from %s\n", args[0])
		return nil
	},
}

func parseVector(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vector := make([]float64, 0, len(parts))
	for _, part := range parts {
		val, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid vector component %q: %w", part, err)
		}
		vector = append(vector, val)
	}
	return vector, nil
}

func parseIndexKind(s string) vectorai.IndexKind {
	switch s {
	case "kdtree":
		return vectorai.IndexKDTree
	case "lsh":
		return vectorai.IndexLSH
	default:
		return vectorai.IndexLinear
	}
}

func newLogger() vectorai.Logger {
	level := vectorai.LevelInfo
	if verbose {
		level = vectorai.LevelDebug
	}
	return vectorai.NewLogger(level)
}

// openStore loads the store from snapshotPath when it exists, or
// starts an empty one otherwise. The CLI has no long-running process
// to hold a single in-memory Store across invocations, so every
// command round-trips through the snapshot file on disk.
func openStore() (*vectorai.Store, error) {
	store := vectorai.New(vectorai.DefaultConfig(), newLogger())
	if snapshotPath == "" {
		return store, nil
	}
	if _, err := os.Stat(snapshotPath); err != nil {
		return store, nil
	}
	if err := store.LoadSnapshot(snapshotPath); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return store, nil
}

func saveStore(store *vectorai.Store) {
	if snapshotPath == "" {
		return
	}
	if err := store.SaveSnapshot(snapshotPath); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to persist snapshot: %v\n", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "path to a snapshot file backing this store")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	libraryCreateCmd.Flags().String("description", "", "library description")
	libraryCreateCmd.Flags().Bool("strict", false, "disable LSH fallback-to-linear-scan padding")
	rootCmd.PersistentFlags().StringVar(&indexKind, "index", "linear", "index kind: linear, kdtree, lsh")

	chunkAddCmd.Flags().String("text", "", "chunk text")
	chunkAddCmd.Flags().String("vector", "", "comma-separated embedding components")

	searchCmd.Flags().String("vector", "", "comma-separated query embedding components")
	searchCmd.Flags().Int("k", 10, "number of nearest neighbours to return")

	libraryCmd.AddCommand(libraryCreateCmd, libraryListCmd)
	chunkCmd.AddCommand(chunkAddCmd)
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotLoadCmd)
	rootCmd.AddCommand(libraryCmd, chunkCmd, searchCmd, snapshotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
