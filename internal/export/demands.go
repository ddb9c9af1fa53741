// Package export renders repository snapshots into download formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"hirePortal/internal/talent"
)

var demandHeader = []string{
	"S.No",
	"RR No",
	"Client",
	"Experience",
	"Country",
	"Location",
	"Creation Date",
	"Ageing in Weeks",
	"Priority",
	"Status",
	"Interviewer 1",
	"Interviewer 2",
	"Recruiter",
	"Primary Skills",
	"Secondary Skills",
	"Job Description",
}

// WriteDemandsCSV 把需求列表按导出报表格式写出。
// 行序保持传入顺序，Ageing 按当前时间重算。
func WriteDemandsCSV(w io.Writer, demands []talent.Demand, now time.Time) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(demandHeader); err != nil {
		return err
	}

	for i, demand := range demands {
		record := []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("RR%03d", demand.ID),
			demand.ClientName,
			fmt.Sprintf("%d-%d yrs", demand.ExpFrom, demand.ExpTo),
			demand.Country,
			demand.Location,
			demand.CreatedDate,
			strconv.Itoa(talent.AgeingWeeks(demand.CreatedDate, now)),
			demand.JobPriority,
			demand.Status,
			demand.Interviewer1,
			demand.Interviewer2,
			demand.RecruiterPOC,
			strings.Join(demand.PrimarySkill, ", "),
			strings.Join(demand.SecondarySkill, ", "),
			demand.JobDescription,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
