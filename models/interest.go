package models

import "time"

// Field is a professional category a user can declare interest in.
type Field string

const (
	FieldBackEndDeveloper   Field = "backEndDeveloper"
	FieldFrontEndDeveloper  Field = "frontEndDeveloper"
	FieldFullStackDeveloper Field = "fullStackDeveloper"
	FieldMobileDeveloper    Field = "mobileDeveloper"
	FieldGameDeveloper      Field = "gameDeveloper"
	FieldDataEngineer       Field = "dataEngineer"
	FieldDataScientist      Field = "dataScientist"
	FieldDevOpsEngineer     Field = "devOpsEngineer"
	FieldSecurityEngineer   Field = "securityEngineer"
	FieldEmbeddedDeveloper  Field = "embeddedDeveloper"
	FieldQAEngineer         Field = "qaEngineer"
	FieldDesigner           Field = "designer"
	FieldProductManager     Field = "productManager"
	FieldEtc                Field = "etc"
)

var validFields = map[Field]struct{}{
	FieldBackEndDeveloper:   {},
	FieldFrontEndDeveloper:  {},
	FieldFullStackDeveloper: {},
	FieldMobileDeveloper:    {},
	FieldGameDeveloper:      {},
	FieldDataEngineer:       {},
	FieldDataScientist:      {},
	FieldDevOpsEngineer:     {},
	FieldSecurityEngineer:   {},
	FieldEmbeddedDeveloper:  {},
	FieldQAEngineer:         {},
	FieldDesigner:           {},
	FieldProductManager:     {},
	FieldEtc:                {},
}

// Valid reports whether f is one of the known categories.
func (f Field) Valid() bool {
	_, ok := validFields[f]
	return ok
}

// Interest links a user to one Field. (user_id, field) is unique.
type Interest struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"uniqueIndex:idx_interest_user_field;not null" json:"-"`
	Field     Field     `gorm:"size:32;uniqueIndex:idx_interest_user_field;not null" json:"field"`
	CreatedAt time.Time `json:"-"`
}
