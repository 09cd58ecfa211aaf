// submission.go
//
// Lead capture, notification and admin backend for the leaddesk marketing site
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of leaddesk.
// leaddesk is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// leaddesk is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with leaddesk.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package models

import "time"

// Form kinds produced by the public site
const (
	FormTypeContact       = "contact"
	FormTypeQuote         = "quote"
	FormTypeCertification = "certification"
)

// Submission is one lead captured by the ingestion endpoint.
// Rows are never updated after creation.
type Submission struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FormType          string    `gorm:"size:50;not null;default:contact;index" json:"form_type"`
	Name              string    `gorm:"size:255" json:"name"`
	Email             string    `gorm:"size:255;index" json:"email"`
	Phone             string    `gorm:"size:50" json:"phone"`
	Message           string    `gorm:"type:text" json:"message"`
	Organisation      string    `gorm:"size:255" json:"organisation"`
	Address           string    `gorm:"type:text" json:"address"`
	City              string    `gorm:"size:100" json:"city"`
	State             string    `gorm:"size:100" json:"state"`
	EstimatedVolume   string    `gorm:"size:100" json:"estimated_volume"`
	ReleaseDate       string    `gorm:"size:100" json:"release_date"`
	CADFilePath       *string   `gorm:"size:500" json:"cad_file_path"`
	RFQFilePath       *string   `gorm:"size:500" json:"rfq_file_path"`
	CertificationType string    `gorm:"size:100" json:"certification_type"`
	IPAddress         string    `gorm:"size:45" json:"ip_address"`
	UserAgent         string    `gorm:"type:text" json:"user_agent"`
	EmailMissing      bool      `gorm:"not null;default:false" json:"email_missing"`
	FormData          JSON      `json:"form_data,omitempty"`
	CreatedAt         time.Time `gorm:"<-:create;index" json:"created_at"`
}

// TableName overrides the table name for Submission
func (Submission) TableName() string {
	return "form_submissions"
}
