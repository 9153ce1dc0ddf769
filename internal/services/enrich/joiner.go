// Package enrich resolves profile foreign keys into display fields for
// the admin views. Lookups are batched: all distinct ids across a row
// set go out as one query, never one query per row.
package enrich

import (
	"context"

	"go.uber.org/zap"

	"github.com/yansassi23/upduoadm/internal/domain/model"
)

type ProfileDirectory interface {
	GetDisplayByIDs(ctx context.Context, ids []string) (map[string]model.ProfileDisplay, error)
}

type Joiner struct {
	directory ProfileDirectory
	logger    *zap.Logger
}

func NewJoiner(directory ProfileDirectory, logger *zap.Logger) *Joiner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Joiner{
		directory: directory,
		logger:    logger,
	}
}

// Displays resolves every distinct non-empty id across the given sets
// in a single directory call. It is total: ids with no matching profile
// are simply absent from the map, and a directory failure is logged and
// yields an empty map, so callers always fall back to placeholder
// display values instead of failing the row set.
func (j *Joiner) Displays(ctx context.Context, idSets ...[]string) map[string]model.ProfileDisplay {
	ids := distinct(idSets)
	if len(ids) == 0 || j.directory == nil {
		return map[string]model.ProfileDisplay{}
	}

	displays, err := j.directory.GetDisplayByIDs(ctx, ids)
	if err != nil {
		j.logger.Warn("profile display lookup failed, using placeholders",
			zap.Int("ids", len(ids)),
			zap.Error(err),
		)
		return map[string]model.ProfileDisplay{}
	}
	if displays == nil {
		return map[string]model.ProfileDisplay{}
	}
	return displays
}

// Display reads one profile out of a resolved set, falling back to the
// placeholder the admin views render for dangling references.
func Display(displays map[string]model.ProfileDisplay, id string) model.ProfileDisplay {
	if display, ok := displays[id]; ok {
		return display
	}
	return model.ProfileDisplay{Name: "Nome não informado"}
}

func distinct(idSets [][]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, set := range idSets {
		for _, id := range set {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
