package attendance

import (
	"testing"

	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAttendanceRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        MarkAttendanceRequest
		wantFields []string
	}{
		{name: "valid", req: MarkAttendanceRequest{Date: "2024-05-01", Status: "half_day"}},
		{name: "trims whitespace", req: MarkAttendanceRequest{Date: " 2024-05-01 ", Status: " present "}},
		{name: "missing everything", req: MarkAttendanceRequest{}, wantFields: []string{"date", "status"}},
		{name: "bad date", req: MarkAttendanceRequest{Date: "01/05/2024", Status: "present"}, wantFields: []string{"date"}},
		{name: "unknown status", req: MarkAttendanceRequest{Date: "2024-05-01", Status: "late"}, wantFields: []string{"status"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			m := verrs.ToMap()
			assert.Len(t, m, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, m, f)
			}
		})
	}
}

func TestHistoryFilter_Validate(t *testing.T) {
	f := HistoryFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, DefaultHistoryLimit, f.Limit)

	f = HistoryFilter{Limit: 101}
	assert.Error(t, f.Validate())

	f = HistoryFilter{Limit: -1}
	assert.Error(t, f.Validate())
}

func TestMonthRequest_Validate(t *testing.T) {
	ok := []MonthRequest{{}, {Year: 2024, Month: 2}}
	for _, r := range ok {
		assert.NoError(t, r.Validate(), "%+v", r)
	}
	bad := []MonthRequest{{Year: 2024}, {Month: 3}, {Year: 2024, Month: 13}, {Year: 1800, Month: 1}}
	for _, r := range bad {
		assert.Error(t, r.Validate(), "%+v", r)
	}
}
