package service

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/albumview/internal/domain"
)

// AlbumRef identifies one album in an album list payload
type AlbumRef struct {
	ID    string
	Title string
}

// AlbumRefs extracts album references from a payload shaped like
// {"albums": [{"id": "...", "title": "..."}]}. Entries without an id are skipped.
func AlbumRefs(payload domain.Payload) []AlbumRef {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	list, ok := obj["albums"].([]any)
	if !ok {
		return nil
	}

	refs := make([]AlbumRef, 0, len(list))
	for _, entry := range list {
		album, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id, _ := album["id"].(string)
		if id == "" {
			continue
		}
		title, _ := album["title"].(string)
		refs = append(refs, AlbumRef{ID: id, Title: title})
	}
	return refs
}

// ResolveAlbumID finds an album in an album list payload. An exact id match
// wins; otherwise the closest fuzzy title match is used.
func ResolveAlbumID(payload domain.Payload, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", domain.ErrAlbumIDRequired
	}

	refs := AlbumRefs(payload)
	for _, ref := range refs {
		if ref.ID == query {
			return ref.ID, nil
		}
	}

	titles := make([]string, len(refs))
	for i, ref := range refs {
		titles[i] = ref.Title
	}

	matches := fuzzy.RankFindFold(query, titles)
	if len(matches) == 0 {
		return "", domain.ErrAlbumNotFound
	}

	// Lower distance is closer; ties keep list order
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	return refs[matches[0].OriginalIndex].ID, nil
}
