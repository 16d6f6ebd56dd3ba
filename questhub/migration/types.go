package migration

import "time"

type Stats struct {
	Tables    map[string]*TableStats
	StartTime time.Time
}

type TableStats struct {
	Read     int64
	Imported int64
	Skipped  int64
}

func (s *Stats) table(name string) *TableStats {
	if t, ok := s.Tables[name]; ok {
		return t
	}
	t := &TableStats{}
	s.Tables[name] = t
	return t
}
