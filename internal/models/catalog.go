package models

import "time"

// Audience type codes as stored on items (legacy character codes).
const (
	AudienceAdult int16 = 97
	AudienceYouth int16 = 106
)

// AudienceLabel maps an item audience code to its wire label.
func AudienceLabel(code *int16) string {
	if code == nil {
		return "unknown"
	}
	switch *code {
	case AudienceAdult:
		return "adult"
	case AudienceYouth:
		return "children"
	default:
		return "unknown"
	}
}

// Source is an acquisition channel for specimens (purchase, donation, branch
// deposit...).
type Source struct {
	ID        int32      `gorm:"primarykey"        json:"id"`
	Key       *string    `                         json:"key"`
	Name      string     `gorm:"not null"          json:"name" validate:"required,max=255"`
	IsDefault bool       `gorm:"column:is_default" json:"default"`
	CreatedAt time.Time  `                         json:"created_at"`
	UpdatedAt time.Time  `                         json:"updated_at"`
	DeletedAt *time.Time `gorm:"index"             json:"deleted_at"`
}

// Item is a bibliographic record describing one or more specimens. Media
// type is a short DB code ("b" book, "bc" comics, "p" periodical, "vd" DVD,
// "amc" music CD...); audience type is one of the Audience* codes.
type Item struct {
	ID           int32     `gorm:"primarykey" json:"id"`
	Title        string    `gorm:"not null"   json:"title"`
	MediaType    *string   `                  json:"media_type"`
	AudienceType *int16    `                  json:"audience_type"`
	CreatedAt    time.Time `                  json:"created_at"`
	UpdatedAt    time.Time `                  json:"updated_at"`
}

// Specimen is one physical copy of an item. Archival is tracked solely via
// ArchivedAt (NULL = active).
type Specimen struct {
	ID         int32      `gorm:"primarykey" json:"id"`
	ItemID     int32      `gorm:"not null"   json:"item_id"`
	Item       *Item      `                  json:"item,omitempty"`
	SourceID   *int32     `                  json:"source_id"`
	Source     *Source    `                  json:"source,omitempty"`
	Barcode    *string    `                  json:"barcode"`
	CallNumber *string    `                  json:"call_number"`
	CreatedAt  time.Time  `                  json:"created_at"`
	UpdatedAt  time.Time  `                  json:"updated_at"`
	ArchivedAt *time.Time `gorm:"index"      json:"archived_at"`
}

// Loan is an active (not yet returned) loan of a specimen.
type Loan struct {
	ID         int32      `gorm:"primarykey" json:"id"`
	SpecimenID int32      `gorm:"not null"   json:"specimen_id"`
	UserID     int32      `gorm:"not null"   json:"user_id"`
	Date       time.Time  `gorm:"not null"   json:"date"`
	IssueDate  *time.Time `                  json:"issue_date"`
}

// LoanArchive is a returned loan moved to the archive table. Historical and
// active loans together form the full loan record.
type LoanArchive struct {
	ID           int32      `gorm:"primarykey" json:"id"`
	SpecimenID   int32      `gorm:"not null"   json:"specimen_id"`
	UserID       int32      `gorm:"not null"   json:"user_id"`
	Date         time.Time  `gorm:"not null"   json:"date"`
	ReturnedDate *time.Time `                  json:"returned_date"`
}

func (LoanArchive) TableName() string {
	return "loans_archives"
}
