package display

import (
	"fmt"

	"github.com/valerio/go-jazz/jazz/backend"
	"github.com/valerio/go-jazz/jazz/effects"
)

// presenter composites the screen with the palette effects and hands the
// result to the backend.
type presenter interface {
	present(s *State, mspf int, chain *effects.Chain, stopped bool) error
}

// emulatedPresenter compiles the palette into a scratch copy and remaps every
// pixel through it, for backends without a palette lookup of their own.
type emulatedPresenter struct{}

func (emulatedPresenter) present(s *State, mspf int, chain *effects.Chain, stopped bool) error {
	s.scratch = s.current
	chain.Apply(&s.scratch, mspf, stopped)

	if err := s.pushTable(s.scratch[:], 0); err != nil {
		return err
	}

	s.frame.Remap(s.screen, &s.scratch)
	if err := s.backend.Present(s.frame); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}
	return nil
}

// directPresenter applies effects straight to the palette table and lets the
// backend look the indices up.
type directPresenter struct {
	target backend.IndexedBackend
}

func (p directPresenter) present(s *State, mspf int, chain *effects.Chain, stopped bool) error {
	// effects never accumulate: the table starts from the current palette every frame
	s.table = s.current
	chain.Apply(&s.table, mspf, stopped)

	if err := s.pushTable(s.table[:], 0); err != nil {
		return err
	}

	if err := p.target.PresentIndexed(s.screen); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}
	return nil
}
