package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-shop-admin/internal/event"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/tabular"
	"go-shop-admin/pkg/apierror"
)

// ContactService handles public contact-form submissions and their triage in
// the admin dashboard.
type ContactService struct {
	repo *repository.ContactRepository
	bus  event.Bus
}

func NewContactService(repo *repository.ContactRepository, bus event.Bus) *ContactService {
	return &ContactService{repo: repo, bus: bus}
}

func (s *ContactService) Submit(ctx context.Context, req model.ContactRequest) (model.ContactSubmission, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)
	if name == "" || email == "" || message == "" {
		return model.ContactSubmission{}, apierror.New("BAD_REQUEST", "name, email and message are required", "", http.StatusBadRequest)
	}

	c := model.ContactSubmission{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Subject:   strings.TrimSpace(req.Subject),
		Message:   message,
		Status:    model.ContactStatusNew,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, &c); err != nil {
		return model.ContactSubmission{}, err
	}

	if s.bus != nil {
		s.bus.Publish(event.Event{
			ID:        uuid.NewString(),
			Type:      event.TypeContactReceived,
			Payload:   c,
			Timestamp: c.CreatedAt.Format(time.RFC3339),
		})
	}
	return c, nil
}

func (s *ContactService) Search(ctx context.Context, q tabular.Query) (tabular.Page, error) {
	contacts, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return tabular.Page{}, err
	}

	rows := make([]tabular.Row, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, contactRow(c))
	}
	return pageOf(rows, total, q), nil
}

// UpdateStatus moves a submission through the new → read → resolved triage
// states.
func (s *ContactService) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case model.ContactStatusNew, model.ContactStatusRead, model.ContactStatusResolved:
	default:
		return apierror.New("BAD_REQUEST", "invalid contact status", status, http.StatusBadRequest)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *ContactService) Update(ctx context.Context, id string, row tabular.Row) error {
	if _, ok := row["status"]; !ok {
		return apierror.New("BAD_REQUEST", "only the status field is editable", "", http.StatusBadRequest)
	}
	return s.UpdateStatus(ctx, id, rowString(row, "status"))
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ContactService) BulkDelete(ctx context.Context, ids []string) (tabular.BulkResult, error) {
	deleted, failed, err := s.repo.BulkDelete(ctx, ids)
	if err != nil {
		return tabular.BulkResult{}, err
	}
	return tabular.BulkResult{Deleted: deleted, Failed: failed}, nil
}
