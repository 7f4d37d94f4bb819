package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gstims/internal/domain"
	"gstims/internal/port"
)

// SyncService orchestrates the download -> upload -> status-poll ->
// apply-result cycle against the portal. Uploads and resets for one GSTIN
// never overlap: the per-GSTIN lock spans the in-progress check, the portal
// submission and the token persistence.
type SyncService struct {
	inwardRepo      port.InwardSupplyRepository
	returnLogRepo   port.ReturnLogRepository
	integrationRepo port.IntegrationRequestRepository
	batcher         *UploadBatcher
	portal          port.PortalClient
	queue           port.TaskQueue
	notifier        port.Notifier

	gstinLocks sync.Map // companyGSTIN -> *sync.Mutex
}

// NewSyncService creates a new SyncService.
func NewSyncService(
	inwardRepo port.InwardSupplyRepository,
	returnLogRepo port.ReturnLogRepository,
	integrationRepo port.IntegrationRequestRepository,
	batcher *UploadBatcher,
	portal port.PortalClient,
	queue port.TaskQueue,
	notifier port.Notifier,
) *SyncService {
	return &SyncService{
		inwardRepo:      inwardRepo,
		returnLogRepo:   returnLogRepo,
		integrationRepo: integrationRepo,
		batcher:         batcher,
		portal:          portal,
		queue:           queue,
		notifier:        notifier,
	}
}

// ActionStatusResult is the raw polling result returned to the UI.
type ActionStatusResult struct {
	StatusCode domain.StatusCode `json:"status_cd"`
}

func (s *SyncService) lockFor(companyGSTIN string) *sync.Mutex {
	mu, _ := s.gstinLocks.LoadOrStore(companyGSTIN, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// SaveInvoices uploads pending accepted/rejected/pending actions for the
// GSTIN. An empty eligible set is a no-op, not an error.
func (s *SyncService) SaveInvoices(ctx context.Context, companyGSTIN string) error {
	return s.upload(ctx, companyGSTIN, domain.RequestTypeSave)
}

// ResetInvoices uploads pending reverts to No Action for the GSTIN.
func (s *SyncService) ResetInvoices(ctx context.Context, companyGSTIN string) error {
	return s.upload(ctx, companyGSTIN, domain.RequestTypeReset)
}

func (s *SyncService) upload(ctx context.Context, companyGSTIN string, requestType domain.RequestType) error {
	mu := s.lockFor(companyGSTIN)
	mu.Lock()
	defer mu.Unlock()

	logName := domain.ReturnLogName(companyGSTIN)
	if _, err := s.returnLogRepo.Get(ctx, logName); err != nil {
		return err
	}

	if err := s.portal.ValidateAuthToken(ctx, companyGSTIN); err != nil {
		return err
	}

	// Nothing eligible is a no-op even when an earlier request is still
	// being processed.
	batch, err := s.batcher.Build(ctx, companyGSTIN, requestType)
	if err != nil {
		return fmt.Errorf("syncService.upload: %w", err)
	}
	if len(batch) == 0 {
		return nil
	}

	pending, err := s.returnLogRepo.FirstUnprocessedAction(ctx, logName, requestType)
	if err != nil {
		return fmt.Errorf("syncService.upload: %w", err)
	}
	if pending != nil {
		return fmt.Errorf("%w: %s request already submitted for %s", domain.ErrRequestInProgress, requestType, companyGSTIN)
	}

	var resp *port.UploadResponse
	switch requestType {
	case domain.RequestTypeSave:
		resp, err = s.portal.Save(ctx, companyGSTIN, batch)
	case domain.RequestTypeReset:
		resp, err = s.portal.Reset(ctx, companyGSTIN, batch)
	}
	if err != nil {
		return err
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("syncService.upload: marshaling batch: %w", err)
	}
	if err := s.integrationRepo.Save(ctx, &domain.IntegrationRequest{
		RequestID:    resp.RequestID,
		CompanyGSTIN: companyGSTIN,
		RequestType:  requestType,
		Payload:      payload,
	}); err != nil {
		return fmt.Errorf("syncService.upload: %w", err)
	}

	if err := s.returnLogRepo.AddAction(ctx, &domain.ReturnAction{
		ReturnLogName: logName,
		RequestType:   requestType,
		Token:         resp.ReferenceID,
		RequestID:     resp.RequestID,
	}); err != nil {
		return fmt.Errorf("syncService.upload: %w", err)
	}
	return nil
}

// CheckActionStatus polls the portal for the oldest unprocessed request of
// the given kind. When nothing is pending it answers Processed without
// contacting the portal so the UI can stop polling.
func (s *SyncService) CheckActionStatus(ctx context.Context, companyGSTIN string, requestType domain.RequestType) (*ActionStatusResult, error) {
	logName := domain.ReturnLogName(companyGSTIN)

	action, err := s.returnLogRepo.FirstUnprocessedAction(ctx, logName, requestType)
	if err != nil {
		return nil, fmt.Errorf("syncService.CheckActionStatus: %w", err)
	}
	if action == nil {
		return &ActionStatusResult{StatusCode: domain.StatusProcessed}, nil
	}

	status, err := s.portal.GetRequestStatus(ctx, companyGSTIN, action.Token)
	if err != nil {
		return nil, err
	}
	if status.StatusCode == domain.StatusInProgress {
		return &ActionStatusResult{StatusCode: status.StatusCode}, nil
	}

	label := domain.StatusCodeMap[status.StatusCode]
	if label == "" {
		label = string(status.StatusCode)
	}
	if err := s.returnLogRepo.SetActionStatus(ctx, action.ID, label); err != nil {
		return nil, fmt.Errorf("syncService.CheckActionStatus: %w", err)
	}

	notification := domain.ActionStatusNotification{
		ReturnType:   "IMS",
		ReturnPeriod: "ALL",
		RequestType:  requestType,
		StatusCode:   status.StatusCode,
		GSTIN:        companyGSTIN,
	}
	if status.StatusCode == domain.StatusError {
		notification.RequestID = action.RequestID
	}
	if err := s.notifier.PublishActionStatus(ctx, notification); err != nil {
		log.Printf("syncService: publishing action status for %s: %v", companyGSTIN, err)
	}

	if status.StatusCode == domain.StatusProcessed || status.StatusCode == domain.StatusProcessedWithErrors {
		requestID := action.RequestID
		errorReport := status.ErrorReport
		if err := s.queue.Submit(port.Task{
			Name: "reapply-previous-action:" + requestID,
			Run: func(taskCtx context.Context) error {
				return s.reapplyPreviousAction(taskCtx, companyGSTIN, requestID, errorReport)
			},
		}); err != nil {
			return nil, fmt.Errorf("syncService.CheckActionStatus: %w", err)
		}
	}

	return &ActionStatusResult{StatusCode: status.StatusCode}, nil
}

// reapplyPreviousAction re-derives previous_ims_action for every invoice that
// was part of the uploaded batch, from the archived payload. Invoices named
// in the error report keep their pre-upload state since the portal rejected
// them. Safe to re-apply; the queue retries it.
func (s *SyncService) reapplyPreviousAction(ctx context.Context, companyGSTIN, requestID string, errorReport domain.ErrorReport) error {
	archived, err := s.integrationRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("syncService.reapplyPreviousAction: %w", err)
	}

	var batch domain.UploadBatch
	if err := json.Unmarshal(archived.Payload, &batch); err != nil {
		return fmt.Errorf("syncService.reapplyPreviousAction: decoding archived payload: %w", err)
	}

	errorKeys := errorReport.Keys()

	var keys []domain.InvoiceKey
	for categoryName, invoices := range batch {
		handler, ok := HandlerFor(domain.Category(strings.ToUpper(categoryName)))
		if !ok {
			return fmt.Errorf("syncService.reapplyPreviousAction: unknown category %q in archived payload", categoryName)
		}
		for i := range invoices {
			key := handler.InvoiceKeyOf(&invoices[i])
			if errorKeys[key] {
				continue
			}
			keys = append(keys, key)
		}
	}

	if err := s.inwardRepo.SyncPreviousIMSAction(ctx, companyGSTIN, keys); err != nil {
		return fmt.Errorf("syncService.reapplyPreviousAction: %w", err)
	}
	return nil
}

// ensureNoPendingRequest blocks downloads while any save or reset request is
// still awaiting a terminal status; applying a fresh download over in-flight
// upload bookkeeping would corrupt the re-derive step.
func (s *SyncService) ensureNoPendingRequest(ctx context.Context, companyGSTIN string) error {
	pending, err := s.returnLogRepo.HasUnprocessedAction(ctx, domain.ReturnLogName(companyGSTIN))
	if err != nil {
		return fmt.Errorf("syncService.ensureNoPendingRequest: %w", err)
	}
	if pending {
		return fmt.Errorf("%w: portal is still processing an earlier request for %s", domain.ErrRequestInProgress, companyGSTIN)
	}
	return nil
}

// DownloadInvoices enqueues a remote download for the GSTIN; the caller
// returns immediately.
func (s *SyncService) DownloadInvoices(ctx context.Context, companyGSTIN string) error {
	if err := s.portal.ValidateAuthToken(ctx, companyGSTIN); err != nil {
		return err
	}
	if err := s.ensureNoPendingRequest(ctx, companyGSTIN); err != nil {
		return err
	}
	return s.queue.Submit(port.Task{
		Name: "download-invoices:" + companyGSTIN,
		Run: func(taskCtx context.Context) error {
			_, err := s.runDownload(taskCtx, companyGSTIN)
			return err
		},
	})
}

// runDownload fetches the remote invoice deltas and applies them locally. It
// reports whether the portal still has queued invoices, in which case uploads
// must be skipped for this cycle.
func (s *SyncService) runDownload(ctx context.Context, companyGSTIN string) (bool, error) {
	resp, err := s.portal.Download(ctx, companyGSTIN)
	if err != nil {
		return false, err
	}

	if _, err := s.returnLogRepo.GetOrCreate(ctx, companyGSTIN); err != nil {
		return false, fmt.Errorf("syncService.runDownload: %w", err)
	}

	if err := s.ApplyDownloadedInvoices(ctx, companyGSTIN, resp.Invoices); err != nil {
		return false, err
	}

	if resp.HasQueuedInvoices {
		log.Printf("syncService: %s has queued invoices on the portal, skipping upload", companyGSTIN)
		return true, nil
	}

	if err := s.notifier.PublishUploadReady(ctx, companyGSTIN); err != nil {
		log.Printf("syncService: publishing upload-ready for %s: %v", companyGSTIN, err)
	}
	return false, nil
}

// ApplyDownloadedInvoices upserts downloaded invoices per category and prunes
// IMS-only records whose supplier has not filed and which disappeared from
// the fresh download.
func (s *SyncService) ApplyDownloadedInvoices(ctx context.Context, companyGSTIN string, invoices map[domain.Category][]domain.PortalInvoice) error {
	for category, list := range invoices {
		handler, ok := HandlerFor(category)
		if !ok {
			return fmt.Errorf("syncService.ApplyDownloadedInvoices: unknown category %q", category)
		}

		// The portal is authoritative for acknowledged actions: clear the
		// category and let each upsert re-derive previous_ims_action from
		// the downloaded state.
		if err := s.inwardRepo.ResetPreviousIMSAction(ctx, companyGSTIN, handler.Classification(), handler.DocType()); err != nil {
			return fmt.Errorf("syncService.ApplyDownloadedInvoices: %w", err)
		}

		existing, err := s.inwardRepo.ListIMSOnlyUnfiled(ctx, companyGSTIN, handler.Classification(), handler.DocType())
		if err != nil {
			return fmt.Errorf("syncService.ApplyDownloadedInvoices: %w", err)
		}
		stale := make(map[domain.InvoiceKey]*domain.InwardSupply, len(existing))
		for i := range existing {
			stale[existing[i].Key()] = &existing[i]
		}

		for i := range list {
			supply, err := handler.FromPortal(companyGSTIN, &list[i])
			if err != nil {
				return fmt.Errorf("syncService.ApplyDownloadedInvoices: %w", err)
			}
			delete(stale, supply.Key())
			if err := s.inwardRepo.Upsert(ctx, supply); err != nil {
				return fmt.Errorf("syncService.ApplyDownloadedInvoices: %w", err)
			}
		}

		if len(stale) > 0 {
			ids := make([]uuid.UUID, 0, len(stale))
			for _, supply := range stale {
				ids = append(ids, supply.ID)
			}
			if err := s.inwardRepo.Delete(ctx, ids); err != nil {
				return fmt.Errorf("syncService.ApplyDownloadedInvoices: %w", err)
			}
		}
	}
	return nil
}

// SyncWithGSTNAndReupload enqueues the combined download-then-upload unit.
// Upload only proceeds when the download finished with nothing queued.
func (s *SyncService) SyncWithGSTNAndReupload(ctx context.Context, companyGSTIN string) error {
	if err := s.portal.ValidateAuthToken(ctx, companyGSTIN); err != nil {
		return err
	}
	if err := s.ensureNoPendingRequest(ctx, companyGSTIN); err != nil {
		return err
	}
	return s.queue.Submit(port.Task{
		Name: "sync-and-reupload:" + companyGSTIN,
		Run: func(taskCtx context.Context) error {
			return s.runSyncAndReupload(taskCtx, companyGSTIN)
		},
	})
}

func (s *SyncService) runSyncAndReupload(ctx context.Context, companyGSTIN string) error {
	queued, err := s.runDownload(ctx, companyGSTIN)
	if err != nil {
		return err
	}
	if queued {
		return nil
	}

	for _, requestType := range []domain.RequestType{domain.RequestTypeSave, domain.RequestTypeReset} {
		if err := s.upload(ctx, companyGSTIN, requestType); err != nil {
			if errors.Is(err, domain.ErrRequestInProgress) {
				continue
			}
			return err
		}
		if err := s.pollUntilProcessed(ctx, companyGSTIN, requestType); err != nil {
			return err
		}
	}
	return nil
}

// pollUntilProcessed drives CheckActionStatus until the request reaches a
// terminal status or the poll budget runs out.
func (s *SyncService) pollUntilProcessed(ctx context.Context, companyGSTIN string, requestType domain.RequestType) error {
	const (
		maxPolls     = 20
		pollInterval = 15 * time.Second
	)

	for i := 0; i < maxPolls; i++ {
		result, err := s.CheckActionStatus(ctx, companyGSTIN, requestType)
		if err != nil {
			return err
		}
		if result.StatusCode != domain.StatusInProgress {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
	return fmt.Errorf("syncService: %s request for %s still in progress after %d polls", requestType, companyGSTIN, maxPolls)
}
