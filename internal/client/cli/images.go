package cli

import (
	"context"
	"fmt"

	"github.com/avelichko/contactdesk/internal/client/view"
)

func (a *App) searchImages(ctx context.Context, query string) {
	if query == "" {
		q, err := GetSimpleText(a.reader, "Search for images", a.out)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
		query = q
	}

	a.coord.SetActiveTab(ctx, view.TabImages)
	a.coord.SearchImages(ctx, query)
	a.renderImages()
}

func (a *App) renderImages() {
	snap := a.coord.Snapshot()
	if snap.Notice != "" {
		fmt.Fprintln(a.out, snap.Notice)
	}
	if len(snap.Images) == 0 {
		if snap.Notice == "" {
			fmt.Fprintln(a.out, "No images to display. Try searching for something!")
		}
		return
	}
	for _, img := range snap.Images {
		fmt.Fprintf(a.out, "%s\t%s\n", img.Title, img.URL)
	}
}
