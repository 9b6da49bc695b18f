package models

import "time"

// Appointment keeps the camelCase JSON names the booking frontend reads.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Email     string `gorm:"size:100;not null;index" json:"email"`
	Phone     string `gorm:"size:30;not null" json:"phone"`
	Procedure string `gorm:"size:100;not null" json:"procedure"`

	Branch string `gorm:"size:50;not null;index:idx_appointments_slot" json:"branch"`
	Date   string `gorm:"column:appointment_date;size:10;not null;index:idx_appointments_slot" json:"date"`
	Time   string `gorm:"column:appointment_time;size:5;not null;index:idx_appointments_slot" json:"time"`

	UnderHMO            string  `gorm:"column:under_hmo;size:3;not null;default:'No'" json:"underHMO"`
	HMOProvider         *string `gorm:"column:hmo_provider;size:100" json:"hmoProvider"`
	HMOMembershipNumber *string `gorm:"column:hmo_membership_number;size:100" json:"hmoMembershipNumber"`
	Employer            *string `gorm:"size:100" json:"employer"`

	Status      string  `gorm:"size:20;not null;default:'pending';index" json:"status"`
	BookingCode *string `gorm:"column:booking_code;size:10;uniqueIndex" json:"bookingId"`
	Remarks     *string `gorm:"type:text" json:"remarks"`

	LastUpdate time.Time `gorm:"column:last_update" json:"lastUpdate"`
	CreatedAt  time.Time `json:"createdAt"`
}
