package scans

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	scans map[string]Scan
	seq   []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{scans: make(map[string]Scan)}
}

func (r *MemoryRepo) Create(ctx context.Context, scan Scan) (Scan, error) {
	if err := ctx.Err(); err != nil {
		return Scan{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scans[scan.ID] = scan
	r.seq = append(r.seq, scan.ID)
	return scan, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Scan, error) {
	if err := ctx.Err(); err != nil {
		return Scan{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	scan, ok := r.scans[id]
	if !ok {
		return Scan{}, ErrNotFound
	}
	return scan, nil
}

func (r *MemoryRepo) ListByPatient(ctx context.Context, patientID string) ([]Scan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Scan{}
	for _, id := range r.seq {
		scan, ok := r.scans[id]
		if ok && scan.PatientID == patientID {
			out = append(out, scan)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *MemoryRepo) LatestForPatient(ctx context.Context, patientID string) (Scan, error) {
	list, err := r.ListByPatient(ctx, patientID)
	if err != nil {
		return Scan{}, err
	}
	if len(list) == 0 {
		return Scan{}, ErrNotFound
	}
	return list[0], nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.scans[id]; !ok {
		return ErrNotFound
	}
	delete(r.scans, id)
	for i, seqID := range r.seq {
		if seqID == id {
			r.seq = append(r.seq[:i], r.seq[i+1:]...)
			break
		}
	}
	return nil
}
