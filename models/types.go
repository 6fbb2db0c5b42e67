package models

import "time"

// Screen identifies one full-screen kiosk view
type Screen string

const (
	ScreenWelcome      Screen = "welcome"
	ScreenInstructions Screen = "instructions"
	ScreenScanner      Screen = "scanner"
	ScreenScanning     Screen = "scanning"
	ScreenSuccess      Screen = "success"
	ScreenError        Screen = "error"
	ScreenInvalid      Screen = "invalid"
)

// Scan outcome constants (ScanResult.Result)
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultInvalid = "invalid"
)

// Error subtype constants (ScanResult.ErrorType)
const (
	ErrorMultipleSelections = "multiple_selections"
	ErrorDamaged            = "damaged"
	ErrorUnreadable         = "unreadable"
)

// ForcedOutcome is an admin override consumed by the next scan
type ForcedOutcome string

const (
	ForceNone    ForcedOutcome = ""
	ForceSuccess ForcedOutcome = "success"
	ForceError   ForcedOutcome = "error"
)

// Valid reports whether f is one of the known overrides
func (f ForcedOutcome) Valid() bool {
	switch f {
	case ForceNone, ForceSuccess, ForceError:
		return true
	}
	return false
}

// Domain types

// ScanResult is a tagged union on Result. Only the fields of the matching
// variant are populated; build values with the scan package.
type ScanResult struct {
	ID               int64     `json:"id"`
	Result           string    `json:"result"`
	Timestamp        time.Time `json:"timestamp"`
	ProcessingTimeMs int       `json:"processingTimeMs"`

	// success
	BallotNumber string `json:"ballotNumber,omitempty"`

	// error
	ErrorType    string `json:"errorType,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	CanRetry     *bool  `json:"canRetry,omitempty"`

	// invalid
	Reason    string `json:"reason,omitempty"`
	CanAccept *bool  `json:"canAccept,omitempty"`
}

// Screen returns the result screen matching r.Result
func (r ScanResult) Screen() Screen {
	switch r.Result {
	case ResultSuccess:
		return ScreenSuccess
	case ResultError:
		return ScreenError
	default:
		return ScreenInvalid
	}
}

type VotingStats struct {
	ID                 string    `json:"id"`
	TotalScans         int       `json:"totalScans"`
	Successful         int       `json:"successful"`
	Failed             int       `json:"failed"`
	Invalid            int       `json:"invalid"`
	Retries            int       `json:"retries"`
	MultipleSelections int       `json:"multipleSelections"`
	Damaged            int       `json:"damaged"`
	Unreadable         int       `json:"unreadable"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type VotingLocation struct {
	ID             string    `json:"id"`
	Municipality   string    `json:"municipality"`
	LocationNumber string    `json:"locationNumber"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// KioskState is a point-in-time copy of the screen controller
type KioskState struct {
	Screen             Screen        `json:"screen"`
	LastResult         *ScanResult   `json:"lastResult,omitempty"`
	ForcedOutcome      ForcedOutcome `json:"forcedOutcome,omitempty"`
	Progress           int           `json:"progress"`
	ScanStep           int           `json:"scanStep"`
	AdminPanelOpen     bool          `json:"adminPanelOpen"`
	AdminAuthenticated bool          `json:"adminAuthenticated"`
}

// Request types

// StatsUpdate merges only the counters that are set
type StatsUpdate struct {
	TotalScans         *int `json:"totalScans,omitempty"`
	Successful         *int `json:"successful,omitempty"`
	Failed             *int `json:"failed,omitempty"`
	Invalid            *int `json:"invalid,omitempty"`
	Retries            *int `json:"retries,omitempty"`
	MultipleSelections *int `json:"multipleSelections,omitempty"`
	Damaged            *int `json:"damaged,omitempty"`
	Unreadable         *int `json:"unreadable,omitempty"`
}

type UpdateLocationRequest struct {
	Municipality   string `json:"municipality"`
	LocationNumber string `json:"locationNumber"`
}

type AdminAuthRequest struct {
	PIN string `json:"pin"`
}

type ScanRequest struct {
	ForceResult ForcedOutcome `json:"forceResult,omitempty"`
}

// Response types

type AdminAuthResponse struct {
	Authenticated bool   `json:"authenticated"`
	Error         string `json:"error,omitempty"`
}

type StatsSummary struct {
	Stats       VotingStats `json:"stats"`
	SuccessRate string      `json:"successRate"`
	UpdatedAgo  string      `json:"updatedAgo"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
