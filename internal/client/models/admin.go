package models

// AdminUser is one row of the admin user-management table. The backend owns
// the record; the admin controller only caches the last fetched list.
type AdminUser struct {
	ID         int64
	University string
	RollNo     string
	FullName   string
	IsActive   bool
	IsAdmin    bool
}

// StudentPerformance is one row of the admin performance report.
type StudentPerformance struct {
	University string
	RollNo     string
	FullName   string
	LoginCount int
	LastActive string
}
