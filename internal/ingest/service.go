package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lux2ube/Customer-service-sub002/internal/account"
	"github.com/lux2ube/Customer-service-sub002/internal/encoding"
	"github.com/lux2ube/Customer-service-sub002/internal/ledger"
	"github.com/lux2ube/Customer-service-sub002/internal/matching"
	"github.com/lux2ube/Customer-service-sub002/internal/record"
	"github.com/lux2ube/Customer-service-sub002/internal/sms"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=ingest

// Parser turns a raw message into a structured movement. Satisfied by
// sms.Parser.
type Parser interface {
	Parse(msg string) (*sms.ParsedSMS, error)
}

type Records interface {
	Create(ctx context.Context, params record.CreateParams) (*record.Record, error)
	Flag(ctx context.Context, id string) error
}

type Ledger interface {
	Post(ctx context.Context, params ledger.PostParams) (*ledger.Entry, error)
}

type Matcher interface {
	Match(ctx context.Context, q matching.Query) (*matching.Match, error)
}

// Assigner attributes a record to a client. Satisfied by reconcile.Service.
type Assigner interface {
	Assign(ctx context.Context, recordID string, clientID int64) (*record.Record, error)
}

type FailureRepository interface {
	CreateFailure(ctx context.Context, f *Failure) error
	ListFailures(ctx context.Context, includeResolved bool) ([]*Failure, error)
	ResolveFailure(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	parser   Parser
	records  Records
	ledger   Ledger
	matcher  Matcher
	assigner Assigner
	failures FailureRepository
	rates    Rates
}

func NewService(
	parser Parser,
	records Records,
	ledger Ledger,
	matcher Matcher,
	assigner Assigner,
	failures FailureRepository,
	rates Rates,
) *Service {
	return &Service{
		parser:   parser,
		records:  records,
		ledger:   ledger,
		matcher:  matcher,
		assigner: assigner,
		failures: failures,
		rates:    rates,
	}
}

// Outcome reports what one message turned into. Exactly one of Record and
// Failure is set.
type Outcome struct {
	Record      *record.Record
	Failure     *Failure
	Match       *matching.Match
	Assigned    bool
	Blacklisted bool
}

// Ingest runs one raw message through the pipeline: parse, convert to USD,
// create the record, post the suspense entry, then try to attribute it.
// Messages the parser rejects become parsing failures, not errors.
func (s *Service) Ingest(ctx context.Context, raw string) (*Outcome, error) {
	parsed, err := s.parser.Parse(raw)
	if err != nil {
		failure := &Failure{
			ID:         uuid.New(),
			RawMessage: raw,
			Reason:     err.Error(),
		}
		if err := s.failures.CreateFailure(ctx, failure); err != nil {
			return nil, fmt.Errorf("recording parsing failure: %w", err)
		}

		return &Outcome{Failure: failure}, nil
	}

	usdCents, err := s.rates.ToUSDCents(parsed.Amount, parsed.Currency)
	if err != nil {
		return nil, err
	}

	rec, err := s.records.Create(ctx, record.CreateParams{
		Kind:       recordKind(parsed.Source),
		Type:       record.Type(parsed.Type),
		Date:       time.Now().UTC(),
		Amount:     parsed.Amount,
		Currency:   parsed.Currency,
		AmountUSD:  usdCents,
		SenderName: parsed.Person,
		RawMessage: raw,
	})
	if err != nil {
		return nil, fmt.Errorf("creating record: %w", err)
	}

	if err := s.postSuspense(ctx, rec, parsed.Source); err != nil {
		return nil, fmt.Errorf("posting suspense entry for record %s: %w", rec.ID, err)
	}

	outcome := &Outcome{Record: rec}

	match, err := s.matcher.Match(ctx, matching.Query{Person: parsed.Person})
	if err != nil {
		if errors.Is(err, matching.ErrBlacklisted) {
			// Flag the row itself, not just the response, so the
			// manual queue still sees it later.
			if err := s.records.Flag(ctx, rec.ID); err != nil {
				return nil, fmt.Errorf("flagging record %s: %w", rec.ID, err)
			}

			rec.Flagged = true
			outcome.Blacklisted = true

			return outcome, nil
		}

		return nil, fmt.Errorf("matching record %s: %w", rec.ID, err)
	}

	if match == nil {
		return outcome, nil
	}

	outcome.Match = match

	assigned, err := s.assigner.Assign(ctx, rec.ID, match.Client.ID)
	if err != nil {
		// Assignment is best effort here; the record stays in the
		// manual queue.
		slog.Warn("auto-assign failed", "record", rec.ID, "client", match.Client.ID, "error", err)
		return outcome, nil
	}

	outcome.Record = assigned
	outcome.Assigned = true

	return outcome, nil
}

// postSuspense writes the intake entry. An inflow debits the asset the money
// arrived on and credits the suspense account; an outflow is the reverse.
func (s *Service) postSuspense(ctx context.Context, rec *record.Record, source sms.Source) error {
	asset := assetAccount(source)
	suspense := suspenseAccount(rec.Kind)

	debit, credit := asset, suspense
	if rec.Type == record.TypeDebit {
		debit, credit = suspense, asset
	}

	_, err := s.ledger.Post(ctx, ledger.PostParams{
		Date:            rec.Date,
		Description:     fmt.Sprintf("suspense intake for record %s", rec.ID),
		DebitAccountID:  debit,
		CreditAccountID: credit,
		DebitAmount:     rec.Amount,
		CreditAmount:    rec.Amount,
		AmountUSD:       rec.AmountUSD,
	})

	return err
}

func recordKind(source sms.Source) record.Kind {
	if source == sms.SourceWallet {
		return record.KindUSDT
	}

	return record.KindCash
}

func assetAccount(source sms.Source) string {
	switch source {
	case sms.SourceWallet:
		return account.CodeUSDTWallet
	case sms.SourceBank:
		return account.CodeBank
	default:
		return account.CodeCashBox
	}
}

func suspenseAccount(kind record.Kind) string {
	if kind == record.KindUSDT {
		return account.CodeUSDTSuspense
	}

	return account.CodeCashSuspense
}

// DumpSummary totals one bulk ingest of an exported message file.
type DumpSummary struct {
	Lines       int `json:"lines"`
	Records     int `json:"records"`
	Assigned    int `json:"assigned"`
	Failures    int `json:"failures"`
	Blacklisted int `json:"blacklisted"`
	Errors      int `json:"errors"`
}

// IngestDump reads a phone SMS export line by line and ingests every
// non-empty line. The file encoding is detected first; exports arrive as
// UTF-8, UTF-16 or legacy Arabic codepages. One bad line never aborts the
// rest of the file.
func (s *Service) IngestDump(ctx context.Context, r io.Reader) (*DumpSummary, error) {
	decoded, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting dump encoding: %w", err)
	}

	summary := &DumpSummary{}
	scanner := bufio.NewScanner(decoded)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		summary.Lines++

		outcome, err := s.Ingest(ctx, line)
		if err != nil {
			summary.Errors++
			slog.Error("ingesting dump line", "line", summary.Lines, "error", err)
			continue
		}

		switch {
		case outcome.Failure != nil:
			summary.Failures++
		case outcome.Blacklisted:
			summary.Records++
			summary.Blacklisted++
		case outcome.Assigned:
			summary.Records++
			summary.Assigned++
		default:
			summary.Records++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dump: %w", err)
	}

	return summary, nil
}

// Failures lists parsing failures awaiting manual resolution.
func (s *Service) Failures(ctx context.Context, includeResolved bool) ([]*Failure, error) {
	return s.failures.ListFailures(ctx, includeResolved)
}

// Resolve marks a parsing failure as handled.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID) error {
	return s.failures.ResolveFailure(ctx, id)
}
