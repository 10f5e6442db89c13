package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Tenders are keyed this way from their SECOP external id, so re-ingesting the
// same notice always maps to the same record.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// TenderSource identifies the SECOP platform a tender was published on.
type TenderSource int

const (
	// SourceSECOPI is the legacy SECOP I platform.
	SourceSECOPI TenderSource = iota + 1
	// SourceSECOPII is the current SECOP II platform.
	SourceSECOPII
	// SourceSECOPIntegrado is the consolidated SECOP dataset.
	SourceSECOPIntegrado
)

// Tender represents a public procurement notice ingested from SECOP.
// It is immutable for the duration of a match computation.
type Tender struct {
	Id              ID
	ExternalId      string
	Source          TenderSource
	EntityName      string
	ObjectText      string
	Department      string
	Municipality    string
	Amount          *float64
	PublicationDate *time.Time
	ClosingDate     *time.Time
	State           string
	ProcessURL      string
	ContractType    string
	InsertedAt      time.Time
	UpdatedAt       time.Time
}

// Experience represents a company's completed past contract, used as
// matching evidence against incoming tenders.
type Experience struct {
	Id                 ID
	CompanyName        string
	ContractNumber     string
	ProjectDescription string
	ContractingEntity  string
	CompletionDate     *time.Time
	Amount             *float64
	Category           string
	EngineeringArea    string
	Department         string
	Municipality       string
	Keywords           []string // Cached keyword signature (populated at import time)
	InsertedAt         time.Time
	UpdatedAt          time.Time
}

// FactorScores holds the per-factor sub-scores for one (tender, experience)
// pair. Every member is in [0, 1]. Semantic is 0 when the embedding
// capability is unavailable.
type FactorScores struct {
	Semantic float64
	Keyword  float64
	Amount   float64
	Entity   float64
	Location float64
	Category float64
}

// MatchResult describes one experience that matched a tender, with the
// aggregate score and the factor breakdown carried for explainability.
type MatchResult struct {
	ExperienceId       ID
	ProjectDescription string // Truncated to 100 runes with an ellipsis suffix
	ContractingEntity  string
	Amount             *float64
	Score              float64
	Scores             FactorScores
}

// MatchOutcome is the result of matching one tender against an experience set.
// BestScore is the highest aggregate score, or 0 when nothing cleared the
// threshold. TopMatches holds at most five results, sorted by score descending.
type MatchOutcome struct {
	BestScore  float64
	TopMatches []MatchResult
}

// RankedTender pairs a tender with its match outcome for batch results.
type RankedTender struct {
	Tender  *Tender
	Outcome MatchOutcome
}

// Subscription describes an alert recipient and its notification filters.
// Subscriptions are supplied by the caller; the engine does not persist them.
type Subscription struct {
	CompanyName    string
	ContactName    string
	ContactEmail   string
	WhatsAppNumber string
	MinAmount      *float64
	MaxAmount      *float64
	Departments    []string
	Active         bool
}

// Checkpoint records the progress of a background job, such as the last
// successful SECOP fetch.
type Checkpoint struct {
	JobName   string
	LastRun   time.Time
	UpdatedAt time.Time
}
