package staff

type StaffResponse struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	Designation   string `json:"designation"`
	MonthlySalary string `json:"monthly_salary"`
}

func NewStaffResponse(s Staff) StaffResponse {
	return StaffResponse{
		ID:            s.ID,
		FullName:      s.FullName,
		Designation:   s.Designation,
		MonthlySalary: s.MonthlySalary.StringFixed(2),
	}
}
