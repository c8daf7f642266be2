package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"rental-dashboard/internal/client"
	"rental-dashboard/internal/config"
	"rental-dashboard/internal/dashboard"
	"rental-dashboard/internal/domain"
	"rental-dashboard/internal/logger"
)

const usage = `Usage: dashboard [-config path] <command> [options]

Commands:
  login      -username -password        Log in and store the session
  logout                                Drop the stored session
  register   -username -password        Create a new account
  list       [-state -mesin -kc -vendor] Show rental records
  export     -out stem [filters]        Export records to an xlsx workbook
  add        -mesin -tid -kc -lokasi [...] Add a single record
  edit       -tid -lokasi -field -value Update one field
  upload     -tid -lokasi -slot -file   Attach a PDF document
  delete     -ids 1,2,3                 Delete records by id
`

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	session := client.NewSessionStore(cfg.Client.SessionFile)
	api := client.New(cfg.Client.BaseURL, session)
	model := dashboard.NewModel(api,
		func(msg string) { fmt.Println(msg) },
		confirmOnTerminal,
	)

	ctx := context.Background()
	cmd, args := flag.Arg(0), flag.Args()[1:]

	var cmdErr error
	switch cmd {
	case "login":
		cmdErr = runLogin(ctx, api, args)
	case "logout":
		api.Logout()
		fmt.Println("Logged out")
	case "register":
		cmdErr = runRegister(ctx, api, args)
	case "list":
		cmdErr = runList(ctx, model, args)
	case "export":
		cmdErr = runExport(ctx, model, args)
	case "add":
		cmdErr = runAdd(ctx, model, args)
	case "edit":
		cmdErr = runEdit(ctx, model, args)
	case "upload":
		cmdErr = runUpload(ctx, model, args)
	case "delete":
		cmdErr = runDelete(ctx, model, args)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if cmdErr != nil {
		if errors.Is(cmdErr, client.ErrSessionExpired) {
			fmt.Fprintln(os.Stderr, "Session expired, please log in again")
		} else {
			fmt.Fprintln(os.Stderr, "Error:", cmdErr)
		}
		os.Exit(1)
	}
}

func confirmOnTerminal(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func runLogin(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "Username")
	password := fs.String("password", "", "Password")
	fs.Parse(args)

	if *username == "" || *password == "" {
		return errors.New("username and password are required")
	}
	if err := api.Login(ctx, *username, *password); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s\n", api.Session().Username())
	return nil
}

func runRegister(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "Username")
	password := fs.String("password", "", "Password")
	fs.Parse(args)

	if *username == "" || *password == "" {
		return errors.New("username and password are required")
	}
	if err := api.Register(ctx, *username, *password); err != nil {
		return err
	}
	fmt.Println("User created successfully")
	return nil
}

func parseFilterFlags(fs *flag.FlagSet) *dashboard.Filters {
	f := &dashboard.Filters{}
	fs.StringVar(&f.State, "state", "", "Filter by state (safe|warning)")
	fs.StringVar(&f.JenisMesin, "mesin", "", "Filter by machine type")
	fs.StringVar(&f.KCSupervisi, "kc", "", "Filter by supervising branch")
	fs.StringVar(&f.VendorCRO, "vendor", "", "Filter by vendor")
	return f
}

func runList(ctx context.Context, model *dashboard.Model, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	filters := parseFilterFlags(fs)
	fs.Parse(args)

	if err := model.Refresh(ctx); err != nil {
		return err
	}
	model.SetFilters(*filters)

	records := model.FilteredRecords()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tJENIS MESIN\tTID\tKC SUPERVISI\tLOKASI\tPERIODE AKHIR\tSTATE")
	for i := range records {
		rec := &records[i]
		periode := ""
		if rec.PeriodeAkhir != nil {
			periode = *rec.PeriodeAkhir
		}
		id := ""
		if rec.ID != 0 {
			id = strconv.Itoa(int(rec.ID))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			id, rec.JenisMesin, rec.TID, rec.KCSupervisi, rec.Lokasi, periode, rec.State)
	}
	w.Flush()

	if missing := len(records) - model.SelectableCount(); missing > 0 {
		fmt.Printf("\nNote: %d row(s) have no id and cannot be selected for deletion\n", missing)
	}
	if warnings := model.Warnings(); len(warnings) > 0 {
		fmt.Printf("\n%d record(s) have leases ending soon:\n", len(warnings))
		for i := range warnings {
			rec := &warnings[i]
			periode := ""
			if rec.PeriodeAkhir != nil {
				periode = *rec.PeriodeAkhir
			}
			fmt.Printf("  - %s / TID %s / %s, lease ends %s\n", rec.JenisMesin, rec.TID, rec.Lokasi, periode)
		}
	}
	return nil
}

func runExport(ctx context.Context, model *dashboard.Model, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	filters := parseFilterFlags(fs)
	out := fs.String("out", "rental_data", "Output file name (without extension)")
	fs.Parse(args)

	if err := model.Refresh(ctx); err != nil {
		return err
	}
	model.SetFilters(*filters)

	if (dashboard.Filters{}) == *filters {
		return model.ExportAll(*out)
	}
	return model.ExportFiltered(*out)
}

func runAdd(ctx context.Context, model *dashboard.Model, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	mesin := fs.String("mesin", "", "Machine type (required)")
	tid := fs.String("tid", "", "Terminal id (required)")
	kc := fs.String("kc", "", "Supervising branch (required)")
	lokasi := fs.String("lokasi", "", "Location (required)")
	vendor := fs.String("vendor", "", "Vendor")
	harga := fs.String("harga", "", "Yearly rent")
	total := fs.String("total", "", "Total rent for the period")
	lama := fs.String("lama", "", "Lease length in years")
	awal := fs.String("awal", "", "Lease start period (YYYY-MM)")
	akhir := fs.String("akhir", "", "Lease end period (YYYY-MM)")
	pic := fs.String("pic", "", "Person in charge")
	hp := fs.String("hp", "", "Contact number")
	fs.Parse(args)

	rec := &domain.RentalRecord{
		JenisMesin:  *mesin,
		TID:         *tid,
		KCSupervisi: *kc,
		Lokasi:      *lokasi,

		VendorCRO:             emptyToNil(*vendor),
		HargaSewaTahun:        emptyToNil(*harga),
		TotalHargaSewaPeriode: emptyToNil(*total),
		LamaSewaTahun:         emptyToNil(*lama),
		PeriodeAwal:           emptyToNil(*awal),
		PeriodeAkhir:          emptyToNil(*akhir),
		PIC:                   emptyToNil(*pic),
		NomorHP:               emptyToNil(*hp),
	}
	return model.AddRow(ctx, rec)
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func runEdit(ctx context.Context, model *dashboard.Model, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	tid := fs.String("tid", "", "Terminal id")
	lokasi := fs.String("lokasi", "", "Location")
	field := fs.String("field", "", "Field name to update")
	value := fs.String("value", "", "New value")
	fs.Parse(args)

	if *tid == "" || *lokasi == "" || *field == "" {
		return errors.New("tid, lokasi and field are required")
	}
	return model.EditCell(ctx, *tid, *lokasi, *field, *value)
}

func runUpload(ctx context.Context, model *dashboard.Model, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	tid := fs.String("tid", "", "Terminal id")
	lokasi := fs.String("lokasi", "", "Location")
	slot := fs.String("slot", "", "Document slot (polis_asuransi|pks_sewa|sewa_kode)")
	path := fs.String("file", "", "Path to the PDF file")
	fs.Parse(args)

	if *tid == "" || *lokasi == "" || *path == "" {
		return errors.New("tid, lokasi and file are required")
	}
	if !domain.ValidFileSlot(*slot) {
		return fmt.Errorf("invalid document slot %q", *slot)
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	return model.UploadFile(ctx, *tid, *lokasi, domain.FileSlot(*slot), filepath.Base(*path), f)
}

func runDelete(ctx context.Context, model *dashboard.Model, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	idList := fs.String("ids", "", "Comma-separated record ids")
	fs.Parse(args)

	if *idList == "" {
		return errors.New("ids is required")
	}
	if err := model.Refresh(ctx); err != nil {
		return err
	}
	for _, part := range strings.Split(*idList, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return fmt.Errorf("invalid id %q", part)
		}
		model.ToggleSelection(int32(id), true)
	}
	return model.BatchDelete(ctx)
}
