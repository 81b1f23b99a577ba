package vault

import (
	"context"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/logger"
)

// GalleryItem is a displayed memory with the image to show for it
type GalleryItem struct {
	domain.MemorySummary
	ImageURL string
	// Placeholder is set when ImageURL is the placeholder image
	Placeholder bool
	// DisplayDate is the memory date as dd/mm/yyyy
	DisplayDate string
}

// Gallery returns the displayed memories with their gateway images. Images that
// cannot be resolved or reached are replaced by the placeholder.
func (a *App) Gallery(ctx context.Context) []GalleryItem {
	memories := a.View().Memories
	items := make([]GalleryItem, len(memories))
	if len(memories) == 0 {
		return items
	}

	pool := pond.NewPool(a.config.Concurrency, pond.WithContext(ctx))

	group := pool.NewGroup()
	for i, memory := range memories {
		group.Submit(func() {
			items[i] = a.galleryItem(ctx, memory)
		})
	}

	err := group.Wait()
	pool.StopAndWait()

	if err != nil {
		logger.WarnCtx(ctx, "Gallery checks interrupted", zap.Error(err))
		for i, memory := range memories {
			if items[i].ImageURL == "" {
				items[i] = a.placeholderItem(memory)
			}
		}
	}

	return items
}

func (a *App) galleryItem(ctx context.Context, memory domain.MemorySummary) GalleryItem {
	url, err := a.resolver.Resolve(memory.IPFSHash)
	if err != nil {
		logger.DebugCtx(ctx, "Unresolvable memory content",
			zap.String("id", memory.ID),
			zap.String("ipfsHash", memory.IPFSHash),
			zap.Error(err))
		return a.placeholderItem(memory)
	}

	checkCtx, cancel := context.WithTimeout(ctx, a.config.CheckTimeout)
	defer cancel()

	if result := a.checker.Check(checkCtx, url); !result.Healthy() {
		reason := ""
		if result.Error != nil {
			reason = *result.Error
		}
		logger.DebugCtx(ctx, "Memory content unreachable",
			zap.String("id", memory.ID),
			zap.String("url", url),
			zap.String("reason", reason))
		return a.placeholderItem(memory)
	}

	return GalleryItem{
		MemorySummary: memory,
		ImageURL:      url,
		DisplayDate:   memory.FormattedDate(),
	}
}

func (a *App) placeholderItem(memory domain.MemorySummary) GalleryItem {
	return GalleryItem{
		MemorySummary: memory,
		ImageURL:      a.config.PlaceholderPath,
		Placeholder:   true,
		DisplayDate:   memory.FormattedDate(),
	}
}
