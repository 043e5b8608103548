// Package project is the editable design document: a top-strand sequence,
// the methylated positions on both strands, the designed primers and the
// reaction settings. The engine only reads it; every mutation goes through
// methods here.
package project

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bsprimer-core/bases"
	"bsprimer-core/oligo"
	"bsprimer-core/strand"
	"bsprimer-core/thermo"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrEmptyTop     = errors.New("empty top strand")
	ErrInvalidTop   = errors.New("top strand contains non-IUPAC characters")
	ErrNoSuchPrimer = errors.New("no such primer")
)

// PrimerRecord is a primer as stored: bracket notation plus placement.
type PrimerRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Seq    string `json:"seq"`
	Strand string `json:"strand"`
	Start  int    `json:"start"`
	MGB    bool   `json:"mgb,omitempty"`
}

// Project is persisted as one JSON blob.
type Project struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Top          string          `json:"top"`
	MethylTop    []int           `json:"methyl_top,omitempty"`
	MethylBottom []int           `json:"methyl_bottom,omitempty"`
	Primers      []PrimerRecord  `json:"primers,omitempty"`
	Settings     thermo.Settings `json:"settings"`
	Created      time.Time       `json:"created"`
	Updated      time.Time       `json:"updated"`
}

// New creates a project with a fresh ID. top is lowercased and must be
// non-empty IUPAC text.
func New(name, top string, s thermo.Settings) (*Project, error) {
	top = strings.ToLower(strings.TrimSpace(top))
	if top == "" {
		return nil, ErrEmptyTop
	}
	for i := 0; i < len(top); i++ {
		if !bases.IsIUPAC(top[i]) {
			return nil, fmt.Errorf("%w: %q at %d", ErrInvalidTop, top[i], i)
		}
	}
	now := time.Now().UTC()
	return &Project{
		ID:       uuid.NewString(),
		Name:     name,
		Top:      top,
		Settings: s,
		Created:  now,
		Updated:  now,
	}, nil
}

// MethylSets returns the top and bottom methylation sets.
func (p *Project) MethylSets() (strand.MethylSet, strand.MethylSet) {
	return strand.NewMethylSet(p.MethylTop...), strand.NewMethylSet(p.MethylBottom...)
}

// Views derives all six strands from the current state.
func (p *Project) Views() strand.Views {
	mTop, mBot := p.MethylSets()
	return strand.DeriveAll(p.Top, mTop, mBot)
}

// ToggleMethylation flips every index in [start, end] on the top (bottom
// false) or bottom (bottom true) strand. Out-of-range indices are kept but
// never match a cytosine.
func (p *Project) ToggleMethylation(bottom bool, start, end int) {
	mTop, mBot := p.MethylSets()
	if bottom {
		p.MethylBottom = mBot.Toggle(start, end+1).Sorted()
	} else {
		p.MethylTop = mTop.Toggle(start, end+1).Sorted()
	}
	p.touch()
}

// MethylateCpGs marks every CpG methylated on both strands.
func (p *Project) MethylateCpGs() {
	top, bot := strand.CpGs(p.Top)
	mTop, mBot := p.MethylSets()
	p.MethylTop = strand.NewMethylSet(append(mTop.Sorted(), top...)...).Sorted()
	p.MethylBottom = strand.NewMethylSet(append(mBot.Sorted(), bot...)...).Sorted()
	p.touch()
}

// AddPrimer parses raw bracket notation, checks placement against the strand
// and appends the primer.
func (p *Project) AddPrimer(name, raw string, t strand.Type, start int, mgb bool) (PrimerRecord, error) {
	seq, err := oligo.Parse(raw)
	if err != nil {
		return PrimerRecord{}, err
	}
	rec := PrimerRecord{
		ID:     uuid.NewString(),
		Name:   name,
		Seq:    seq.String(),
		Strand: t.String(),
		Start:  start,
		MGB:    mgb,
	}
	if rec.Name == "" {
		rec.Name = fmt.Sprintf("%s_%d", t, start)
	}
	op, err := rec.Primer()
	if err != nil {
		return PrimerRecord{}, err
	}
	if err := op.Validate(len(p.Top)); err != nil {
		return PrimerRecord{}, err
	}
	p.Primers = append(p.Primers, rec)
	p.touch()
	return rec, nil
}

// RemovePrimer deletes the primer whose ID or name equals key.
func (p *Project) RemovePrimer(key string) error {
	for i, r := range p.Primers {
		if r.ID == key || r.Name == key {
			p.Primers = append(p.Primers[:i], p.Primers[i+1:]...)
			p.touch()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNoSuchPrimer, key)
}

// Primer converts the stored record to an engine primer.
func (r PrimerRecord) Primer() (oligo.Primer, error) {
	seq, err := oligo.Parse(r.Seq)
	if err != nil {
		return oligo.Primer{}, fmt.Errorf("primer %q: %w", r.Name, err)
	}
	t, err := strand.ParseType(r.Strand)
	if err != nil {
		return oligo.Primer{}, fmt.Errorf("primer %q: %w", r.Name, err)
	}
	return oligo.Primer{
		ID:     r.ID,
		Name:   r.Name,
		Seq:    seq,
		Strand: t,
		Start:  r.Start,
		MGB:    r.MGB,
	}, nil
}

func (p *Project) touch() { p.Updated = time.Now().UTC() }
