// ABOUTME: Knowledge command group for avatar document management
// ABOUTME: Upload, search, list, and delete knowledge documents

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	knowledgeAvatar string
	knowledgeTitle  string
	knowledgeFile   string
	knowledgeLimit  int
)

// NewKnowledgeCmd creates the knowledge command group
func NewKnowledgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Manage avatar knowledge documents",
		Long: `Manage the documents an avatar draws on when answering.

Uploaded text is split into sentence-bounded chunks tagged with keywords
and topics. Search is a case-insensitive substring match over chunk
content, scoped to one avatar.`,
	}

	cmd.AddCommand(newKnowledgeUploadCmd())
	cmd.AddCommand(newKnowledgeSearchCmd())
	cmd.AddCommand(newKnowledgeListCmd())
	cmd.AddCommand(newKnowledgeDeleteCmd())

	return cmd
}

func newKnowledgeUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload [text]",
		Short: "Upload a document for an avatar",
		Example: `  coach knowledge upload --avatar dr_sakura --file screening-guide.txt
  coach knowledge upload --avatar dr_sakura --title "FAQ" "Mammograms are recommended..."`,
		Args: cobra.MaximumNArgs(1),
		RunE: runKnowledgeUpload,
	}

	cmd.Flags().StringVar(&knowledgeAvatar, "avatar", "", "Avatar the document belongs to")
	cmd.Flags().StringVar(&knowledgeTitle, "title", "", "Document title")
	cmd.Flags().StringVar(&knowledgeFile, "file", "", "Read document text from file")
	_ = cmd.MarkFlagRequired("avatar")

	return cmd
}

func runKnowledgeUpload(cmd *cobra.Command, args []string) error {
	var text string
	if knowledgeFile != "" {
		data, err := os.ReadFile(knowledgeFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		text = string(data)
		if knowledgeTitle == "" {
			knowledgeTitle = knowledgeFile
		}
	} else if len(args) > 0 {
		text = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no document text provided")
	}

	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	doc, err := svc.UploadDocument(knowledgeAvatar, knowledgeTitle, text)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Uploaded %s (%d chunks) as %s\n",
			doc.Title, doc.ChunkCount, doc.DocumentID)
	}
	return nil
}

func newKnowledgeSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search <query>",
		Short:   "Search an avatar's knowledge chunks",
		Example: `  coach knowledge search --avatar dr_sakura "mammogram"`,
		Args:    cobra.ExactArgs(1),
		RunE:    runKnowledgeSearch,
	}

	cmd.Flags().StringVar(&knowledgeAvatar, "avatar", "", "Avatar whose knowledge to search")
	cmd.Flags().IntVar(&knowledgeLimit, "limit", 5, "Maximum chunks to return")
	_ = cmd.MarkFlagRequired("avatar")

	return cmd
}

func runKnowledgeSearch(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	chunks, err := svc.SearchKnowledge(knowledgeAvatar, args[0], knowledgeLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return json.NewEncoder(out).Encode(chunks)
	}

	if len(chunks) == 0 {
		fmt.Fprintln(out, "No matching chunks.")
		return nil
	}
	for _, ch := range chunks {
		fmt.Fprintf(out, "%s [%d] %s\n", ch.DocumentID, ch.Index, truncate(ch.Content, 120))
		if verbose && len(ch.Topics) > 0 {
			fmt.Fprintf(out, "  topics: %s\n", strings.Join(ch.Topics, ", "))
		}
	}
	return nil
}

func newKnowledgeListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an avatar's documents",
		RunE:  runKnowledgeList,
	}

	cmd.Flags().StringVar(&knowledgeAvatar, "avatar", "", "Avatar whose documents to list")
	_ = cmd.MarkFlagRequired("avatar")

	return cmd
}

func runKnowledgeList(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	docs, err := svc.ListDocuments(knowledgeAvatar)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return json.NewEncoder(out).Encode(docs)
	}

	if len(docs) == 0 {
		fmt.Fprintln(out, "No documents uploaded.")
		return nil
	}
	for _, doc := range docs {
		fmt.Fprintf(out, "%s  %-30s %3d chunks  %s\n",
			doc.DocumentID, truncate(doc.Title, 30), doc.ChunkCount, formatTime(doc.CreatedAt))
	}
	return nil
}

func newKnowledgeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <document-id>",
		Short: "Delete a document and its chunks",
		Args:  cobra.ExactArgs(1),
		RunE:  runKnowledgeDelete,
	}
}

func runKnowledgeDelete(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.DeleteDocument(args[0]); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
	}
	return nil
}
