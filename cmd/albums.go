package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dstrand/photoweb/internal/albums"
	"github.com/dstrand/photoweb/internal/formatter"
	"github.com/dstrand/photoweb/internal/shared"
	"github.com/urfave/cli/v3"
)

// AlbumsTree prints the folder/album hierarchy as an indented listing.
func (r *Runner) AlbumsTree(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	store, err := r.loadStore(config)
	if err != nil {
		return err
	}

	tree := albums.BuildTree(store.Library().Albums)

	r.writePlainHeader(fmt.Sprintf("Library (%d albums)", tree.Count()))
	r.printTreeNode(tree, 0)
	return nil
}

func (r *Runner) printTreeNode(node *albums.TreeNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, child := range node.Nodes {
		r.writePlain("%s%s/\n", indent, child.Name)
		r.printTreeNode(child, depth+1)
	}
	for _, album := range node.Albums {
		r.writePlain("%s%s (%d photos, %s)\n", indent, album.Title, len(album.Photos), album.Realm)
	}
}

// AlbumsList lists albums in tree pre-order.
func (r *Runner) AlbumsList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	config := r.loadConfig(cmd.String("config"))

	store, err := r.loadStore(config)
	if err != nil {
		return err
	}

	list := albums.BuildTree(store.Library().Albums).Flatten()

	if useJSON {
		return r.writeJSON(list, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Albums (%d)", len(list)))
	for i, album := range list {
		r.writePlain("%d. %s [%s] - %d photos\n", i+1, album.Title, album.Path, len(album.Photos))
	}
	return nil
}

// AlbumsExport writes the album hierarchy to CSV, Markdown, or plain text.
func (r *Runner) AlbumsExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	outputPath := cmd.String("output")

	config := r.loadConfig(cmd.String("config"))

	store, err := r.loadStore(config)
	if err != nil {
		return err
	}

	tree := albums.BuildTree(store.Library().Albums)
	list := tree.Flatten()

	r.logger.Info("exporting albums", "format", format, "count", len(list))

	var written string
	switch format {
	case "csv":
		written, err = formatter.WriteCSVExport(list, outputPath)
	case "markdown", "md":
		written, err = formatter.WriteMarkdownExport(tree, outputPath)
	case "text", "txt":
		written, err = formatter.WriteTextExport(list, outputPath)
	default:
		return fmt.Errorf("%w: unknown format %q (want csv, markdown, or text)", shared.ErrInvalidFlag, format)
	}

	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlain("✓ Exported %d albums to %s\n", len(list), written)
	return nil
}
