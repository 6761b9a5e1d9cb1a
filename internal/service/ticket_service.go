package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/repository"
	"github.com/alixtron0/tour-backoffice/internal/ticket"
)

var ErrTicketNotFound = errors.New("ticket not found")

// TicketPDF is a rendered ticket document ready for download
type TicketPDF struct {
	Data     []byte
	FileName string
	Pages    int
}

// TicketService defines floating ticket operations: manual ticket entry,
// history, and PDF generation
type TicketService interface {
	Create(ctx context.Context, req *dto.CreateTicketRequest, createdBy string) (*domain.Ticket, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter dto.TicketListFilter) ([]*domain.Ticket, int64, error)
	Delete(ctx context.Context, id string) error
	GeneratePDF(ctx context.Context, id string) (*TicketPDF, error)
	Preview(ctx context.Context, req *dto.PreviewTicketRequest) (*TicketPDF, error)
}

type ticketService struct {
	ticketRepo  repository.TicketRepository
	newExporter func() *ticket.Exporter
}

// NewTicketService creates a new TicketService
func NewTicketService(ticketRepo repository.TicketRepository) TicketService {
	return &ticketService{
		ticketRepo: ticketRepo,
		newExporter: func() *ticket.Exporter {
			return ticket.NewExporter(ticket.NewPDFRenderer)
		},
	}
}

// Create persists a new floating ticket with a generated ticket number
// and booking code
func (s *ticketService) Create(ctx context.Context, req *dto.CreateTicketRequest, createdBy string) (*domain.Ticket, error) {
	number, err := newTicketNumber()
	if err != nil {
		return nil, err
	}
	code, err := randomBookingCode()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	t := &domain.Ticket{
		ID:           uuid.New().String(),
		TicketNumber: number,
		BookingCode:  code,
		Flight:       req.DomainFlight(),
		Airline:      req.DomainAirline(),
		Passengers:   req.DomainPassengers(),
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.ticketRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetByID retrieves a ticket
func (s *ticketService) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	t, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTicketNotFound
	}
	return t, nil
}

// List retrieves one page of tickets plus the total match count
func (s *ticketService) List(ctx context.Context, filter dto.TicketListFilter) ([]*domain.Ticket, int64, error) {
	filter.SetDefaults()
	return s.ticketRepo.List(ctx, filter)
}

// Delete removes a ticket
func (s *ticketService) Delete(ctx context.Context, id string) error {
	t, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTicketNotFound
	}
	return s.ticketRepo.Delete(ctx, id)
}

// GeneratePDF renders a persisted ticket, one page per passenger
func (s *ticketService) GeneratePDF(ctx context.Context, id string) (*TicketPDF, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.render(ticket.RecordsFromTicket(t))
}

// Preview renders a PDF from request data without persisting a ticket.
// The ticket number is blank so the QR payload and barcode make clear it
// is not an issued document.
func (s *ticketService) Preview(ctx context.Context, req *dto.PreviewTicketRequest) (*TicketPDF, error) {
	code := req.BookingCode
	if code == "" {
		code = "PREVIEW"
	}
	t := &domain.Ticket{
		BookingCode: code,
		Flight:      req.DomainFlight(),
		Airline:     req.DomainAirline(),
		Passengers:  req.DomainPassengers(),
	}
	return s.render(ticket.RecordsFromTicket(t))
}

func (s *ticketService) render(records []ticket.Record) (*TicketPDF, error) {
	result, err := s.newExporter().Export(records)
	if err != nil {
		return nil, err
	}
	return &TicketPDF{
		Data:     result.PDF,
		FileName: result.FileName,
		Pages:    result.Pages,
	}, nil
}

// Ticket numbers are 13 digits, matching the airline industry's stock
// number length
func newTicketNumber() (string, error) {
	const digits = 13
	number := make([]byte, digits)
	ten := big.NewInt(10)
	for i := range number {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate ticket number: %w", err)
		}
		number[i] = byte('0' + n.Int64())
	}
	return string(number), nil
}
