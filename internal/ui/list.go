package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/dstrand/photoweb/internal/albums"
	"github.com/dstrand/photoweb/internal/models"
)

var (
	_ list.Item = folderItem{}
	_ list.Item = albumItem{}
	_ list.Item = photoItem{}
)

// folderItem wraps an [albums.TreeNode] to implement [list.Item].
type folderItem struct {
	node *albums.TreeNode
}

func (i folderItem) FilterValue() string { return i.node.Name }
func (i folderItem) Title() string       { return i.node.Name + "/" }
func (i folderItem) Description() string {
	count := i.node.Count()
	if count == 1 {
		return "1 album"
	}
	return fmt.Sprintf("%d albums", count)
}

// albumItem wraps a [models.Album] to implement [list.Item].
type albumItem struct {
	album *models.Album
}

func (i albumItem) FilterValue() string { return i.album.Title }
func (i albumItem) Title() string       { return i.album.Title }
func (i albumItem) Description() string {
	desc := fmt.Sprintf("%d photos • %s", len(i.album.Photos), i.album.Realm)
	if i.album.Date != nil && i.album.Date.Start != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.album.Date.Start)
	}
	return desc
}

// photoItem wraps a [models.Photo] to implement [list.Item].
type photoItem struct {
	photo *models.Photo
}

func (i photoItem) FilterValue() string { return i.photo.Title }
func (i photoItem) Title() string {
	if i.photo.Title != "" {
		return i.photo.Title
	}
	return i.photo.UUID
}
func (i photoItem) Description() string {
	desc := i.photo.Date
	if i.photo.Place != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.photo.Place)
	}
	return desc
}
