package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"lendsqr-admin/internal/client"
	"lendsqr-admin/internal/domain"
	"lendsqr-admin/internal/pager"
)

func printStats(w io.Writer, s *domain.Stats) {
	fmt.Fprintf(w, "USERS %d   ACTIVE %d   WITH LOANS %d   WITH SAVINGS %d\n",
		s.TotalUsers, s.ActiveUsers, s.UsersWithLoans, s.UsersWithSavings)
}

func printUsers(w io.Writer, users []domain.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "no users match")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tORGANIZATION\tUSERNAME\tEMAIL\tPHONE\tDATE JOINED\tSTATUS")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.Organization, u.UserName, u.EmailAddress, u.PhoneNumber, dateOnly(u.CreatedAt), u.Status)
	}
	_ = tw.Flush()
}

func printFooter(w io.Writer, l *client.ListResponse) {
	fmt.Fprintf(w, "\nShowing %d out of %d   (page size %d)\n", len(l.Data), l.Total, l.PageSize)
	fmt.Fprintln(w, "pages: "+pager.Render(pager.Window(l.Page, l.TotalPages), l.Page))
	if l.Adjusted {
		fmt.Fprintf(w, "note: page adjusted to %d of %d\n", l.Page, l.TotalPages)
	}
}

func printUser(w io.Writer, u *domain.User) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(k, v string) { fmt.Fprintf(tw, "%s\t%s\n", k, v) }
	row("ID", u.ID)
	row("Full name", u.FullName)
	row("Username", u.UserName)
	row("Status", string(u.Status))
	row("Organization", u.Organization)
	row("Joined", u.CreatedAt)
	row("Phone", u.PhoneNumber.String())
	row("Email", u.EmailAddress)
	row("BVN", u.BVN.String())
	row("Gender", u.Gender)
	row("Marital status", u.MaritalStatus)
	row("Children", strconv.Itoa(u.Children))
	row("Residence", u.TypeOfResidence)
	row("Education", u.LevelOfEducation)
	row("Employment", u.EmploymentStatus)
	row("Sector", u.SectorOfEmployment)
	row("Duration", u.DurationOfEmployment)
	row("Office email", u.OfficeEmail)
	row("Monthly income", u.MonthlyIncome)
	row("Loan repayment", strconv.FormatFloat(u.LoanRepayment, 'f', 2, 64))
	row("Account balance", strconv.FormatFloat(u.AccountBalance, 'f', 2, 64))
	row("Twitter", u.Twitter)
	row("Facebook", u.Facebook)
	row("Instagram", u.Instagram)
	for i, g := range u.Guarantors {
		row(fmt.Sprintf("Guarantor %d", i+1), fmt.Sprintf("%s, %s, %s, %s", g.FullName, g.PhoneNumber, g.EmailAddress, g.Relationship))
	}
	_ = tw.Flush()
}

func dateOnly(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}
