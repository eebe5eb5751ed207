package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/timesheet/internal/repository"
)

type importService struct {
	store    *SheetStore
	observer UseCaseObserver
}

func NewImportService(store *SheetStore, observers ...UseCaseObserver) ImportService {
	return &importService{store: store, observer: useCaseObserverOrNoop(observers)}
}

// ImportFile copies every readable week of a legacy data file into the
// store. Weeks that already exist are kept as they are.
func (s *importService) ImportFile(ctx context.Context, path string) (result *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"path": path}
	defer func() {
		if result != nil {
			fields["imported"] = result.Imported
			fields["existing"] = result.Existing
			fields["skipped"] = len(result.Skipped)
		}
		observeUseCase(ctx, s.observer, "import-file", startedAt, fields, err)
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	sheets, skipped, err := repository.DecodeLegacyFile(data)
	if err != nil {
		return nil, err
	}

	result = &ImportResult{Skipped: skipped}
	for _, sheet := range sheets {
		created, err := s.store.insertIfAbsent(ctx, sheet)
		if err != nil {
			return nil, fmt.Errorf("importing %s: %w", sheet.Key, err)
		}
		if created {
			result.Imported++
		} else {
			result.Existing++
		}
	}
	return result, nil
}
