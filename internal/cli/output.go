package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/frankenpanel/frankenpanel/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.User:
		o.printUser(v)
	case []response.User:
		o.printUsers(v)
	case response.TokenResponse:
		o.printUser(v.User)
		fmt.Printf("Token: %s\n", v.AccessToken)
	case response.Site:
		o.printSite(v)
	case []response.Site:
		o.printSites(v)
	case []response.Database:
		o.printDatabases(v)
	case response.Database:
		o.printDatabases([]response.Database{v})
	case []response.Domain:
		o.printDomains(v)
	case response.Domain:
		o.printDomains([]response.Domain{v})
	case []response.Backup:
		o.printBackups(v)
	case response.Backup:
		o.printBackups([]response.Backup{v})
	case []response.AuditEntry:
		o.printAudit(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printUser(u response.User) {
	fmt.Printf("User: %s (#%d)\n", u.Username, u.ID)
	if u.FullName != "" {
		fmt.Printf("Name: %s\n", u.FullName)
	}
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Active: %s\n", yesNo(u.IsActive))
	fmt.Printf("Superuser: %s\n", yesNo(u.IsSuperuser))
	if u.LastLogin != nil {
		fmt.Printf("Last login: %s\n", u.LastLogin.Format(time.RFC3339))
	}
}

func (o *Output) printUsers(users []response.User) {
	w := newTable()
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tACTIVE\tSUPERUSER")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, yesNo(u.IsActive), yesNo(u.IsSuperuser))
	}
	_ = w.Flush()
}

func (o *Output) printSite(s response.Site) {
	fmt.Printf("Site: %s (#%d)\n", s.Name, s.ID)
	fmt.Printf("Type: %s\n", s.SiteType)
	fmt.Printf("Status: %s\n", s.Status)
	fmt.Printf("Path: %s\n", s.Path)
	fmt.Printf("Worker port: %d\n", s.WorkerPort)
	if s.PHPVersion != "" {
		fmt.Printf("PHP: %s\n", s.PHPVersion)
	}
	if s.Description != "" {
		fmt.Printf("Description: %s\n", s.Description)
	}
	fmt.Printf("Created: %s\n", s.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printSites(sites []response.Site) {
	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tPORT")
	for _, s := range sites {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", s.ID, s.Name, s.SiteType, s.Status, s.WorkerPort)
	}
	_ = w.Flush()
}

func (o *Output) printDatabases(dbs []response.Database) {
	w := newTable()
	fmt.Fprintln(w, "ID\tSITE\tNAME\tUSERNAME\tHOST\tPORT")
	for _, d := range dbs {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%d\n", d.ID, d.SiteID, d.Name, d.Username, d.Host, d.Port)
	}
	_ = w.Flush()
}

func (o *Output) printDomains(domains []response.Domain) {
	w := newTable()
	fmt.Fprintln(w, "ID\tSITE\tNAME\tPRIMARY\tSSL")
	for _, d := range domains {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", d.ID, d.SiteID, d.Name, yesNo(d.IsPrimary), yesNo(d.SSLEnabled))
	}
	_ = w.Flush()
}

func (o *Output) printBackups(backups []response.Backup) {
	w := newTable()
	fmt.Fprintln(w, "ID\tSITE\tFILENAME\tSIZE\tSTATUS\tCREATED")
	for _, b := range backups {
		fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%s\t%s\n", b.ID, b.SiteID, b.Filename, b.SizeBytes, b.Status, b.CreatedAt.Format(time.RFC3339))
	}
	_ = w.Flush()
}

func (o *Output) printAudit(entries []response.AuditEntry) {
	w := newTable()
	fmt.Fprintln(w, "TIME\tUSER\tACTION\tRESOURCE\tOK\tERROR")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Format(time.RFC3339), e.Username, e.Action, e.Resource, yesNo(e.Success), e.ErrorMessage)
	}
	_ = w.Flush()
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
