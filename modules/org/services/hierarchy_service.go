package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgchart/modules/org/domain/hierarchy"
)

type HierarchyService struct {
	opts []hierarchy.Option
}

func NewHierarchyService(opts ...hierarchy.Option) *HierarchyService {
	return &HierarchyService{opts: opts}
}

// Parse converts org structure text into a single-rooted tree. Empty text
// yields a nil tree.
func (s *HierarchyService) Parse(ctx context.Context, text string) (*hierarchy.Result, error) {
	res, err := hierarchy.ParseWithReport(text, s.opts...)
	if err != nil {
		result := "error"
		if errors.Is(err, hierarchy.ErrCyclicHierarchy) {
			result = "cyclic"
		}
		recordParse(result, 0, false)
		logWithFields(ctx, logrus.WarnLevel, "org structure rejected", logrus.Fields{"error": err.Error()})
		return nil, err
	}

	rep := res.Report
	if res.Root == nil {
		recordParse("empty", len(rep.Dropped), false)
		logWithFields(ctx, logrus.WarnLevel, "empty org structure", logrus.Fields{"lines": rep.Lines, "dropped": len(rep.Dropped)})
		return res, nil
	}
	recordParse("ok", len(rep.Dropped), rep.Synthetic)

	if len(rep.Dropped) > 0 {
		logWithFields(ctx, logrus.DebugLevel, "dropped malformed lines", logrus.Fields{"lines": rep.Dropped})
	}
	if len(rep.DanglingManagers) > 0 {
		logWithFields(ctx, logrus.DebugLevel, "unresolved managers promoted to roots", logrus.Fields{"managers": rep.DanglingManagers})
	}
	if len(rep.Duplicates) > 0 {
		logWithFields(ctx, logrus.WarnLevel, "duplicate employee names", logrus.Fields{"names": rep.Duplicates, "policy": rep.Policy})
	}
	logWithFields(ctx, logrus.InfoLevel, "org structure parsed", logrus.Fields{
		"lines":           rep.Lines,
		"employees":       rep.Employees,
		"root_candidates": rep.RootCandidates,
		"synthetic_root":  rep.Synthetic,
	})
	return res, nil
}
