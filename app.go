package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"pixsteg/config"
	"pixsteg/stegano/img"
	"pixsteg/stegano/lsb"
	steganoutil "pixsteg/stegano/util"
	"pixsteg/util"
)

type app struct {
	conf   *config.FullConfig
	logger *util.Logger
	db     *util.DB // nil when history is disabled
	stdin  io.Reader
	stdout io.Writer
}

func newApp(conf *config.FullConfig) (*app, error) {
	logger, err := util.NewLogger(&conf.Logger)
	if err != nil {
		return nil, err
	}
	a := &app{
		conf:   conf,
		logger: logger,
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
	if conf.History.Enabled {
		db, err := util.ConnectDB(conf.History.DbFile, conf.History.DbPassword, conf.History.DbRowsLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		if err = db.InitDB(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize history database: %w", err)
		}
		a.db = db
	}
	return a, nil
}

func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
}

func (a *app) run(command string, f *flags) error {
	switch command {
	case "hide":
		return a.hide(f.input, f.output, f.message, f.format)
	case "reveal":
		return a.reveal(f.input)
	case "check":
		return a.check(f.input)
	case "capacity":
		return a.capacity(f.input, f.format)
	case "scan":
		return a.scan(f.folder)
	case "readlog":
		key, err := a.conf.Logger.Key()
		if err != nil {
			return err
		}
		return util.ReadLog(a.conf.Logger.Filename, key, a.stdout)
	}
	return fmt.Errorf("unknown command %q", command)
}

func (a *app) options(format string) (img.Options, error) {
	opts, err := a.conf.Options()
	if err != nil {
		return opts, err
	}
	if format != "" {
		if opts.Format, err = img.ParseFormat(format); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func (a *app) pickDecoy() (string, error) {
	folder := a.conf.StegConfig.Folder
	if folder == "" {
		return "", fmt.Errorf("no input image and no decoy folder configured")
	}
	files, err := util.ReadFiles(folder, util.SupportedExtensions)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no decoy images in %s", folder)
	}
	return util.PickFileAtRandom(files), nil
}

func extension(format img.Format) string {
	if format == img.FormatJPEG {
		return "jpg"
	}
	return string(format)
}

func (a *app) hide(input, output, message, format string) error {
	opts, err := a.options(format)
	if err != nil {
		return err
	}
	if input == "" {
		if input, err = a.pickDecoy(); err != nil {
			return err
		}
	}
	if message == "" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}
		message = strings.TrimRight(string(data), "\r\n")
	}
	message = steganoutil.FixUnicode(message)

	decoy, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	carrier, out, err := img.Hide(decoy, message, opts)
	if err != nil {
		return fmt.Errorf("failed to hide message in %s: %w", input, err)
	}
	if output == "" {
		output = util.OutputFilename(input, extension(out))
	}
	if err = os.WriteFile(output, carrier, 0644); err != nil {
		return err
	}
	a.remember(carrier, util.OpHide)
	a.logger.LogInfo(fmt.Sprintf("hid %d bytes from %s in %s (%s)", len(message), input, output, out))
	fmt.Fprintln(a.stdout, output)
	return nil
}

func (a *app) reveal(input string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	message, err := img.Reveal(data)
	switch {
	case err == nil:
	case errors.Is(err, lsb.ErrMalformedPayload):
		return fmt.Errorf("hidden data in %s is corrupted: %w", input, err)
	case lsb.IsNoData(err):
		return fmt.Errorf("there is no data in %s", input)
	default:
		return err
	}
	a.remember(data, util.OpReveal)
	a.logger.LogInfo(fmt.Sprintf("revealed %d bytes from %s", len(message), input))
	fmt.Fprintln(a.stdout, message)
	return nil
}

func (a *app) check(input string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	if img.Check(data) {
		fmt.Fprintf(a.stdout, "%s: contains data\n", input)
	} else {
		fmt.Fprintf(a.stdout, "%s: no data\n", input)
	}
	if a.db != nil {
		records, err := a.db.Lookup(data)
		if err != nil {
			a.logger.LogWarning("history lookup failed: " + err.Error())
			return nil
		}
		for _, r := range records {
			fmt.Fprintf(a.stdout, "\t%s at %s\n", r.Op, r.Created.Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}

func (a *app) capacity(input, format string) error {
	opts, err := a.options(format)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	n, err := img.Capacity(data, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s: %d bytes\n", input, n)
	return nil
}

func (a *app) scan(folder string) error {
	if folder == "" {
		folder = a.conf.StegConfig.Folder
	}
	files, err := util.ReadFiles(folder, util.SupportedExtensions)
	if err != nil {
		return err
	}
	results := util.ScanFiles(files, a.conf.StegConfig.ScanWorkers, img.Check)
	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(a.stdout, "%s: %v\n", r.Filename, r.Err)
		case r.HasData:
			fmt.Fprintf(a.stdout, "%s: contains data\n", r.Filename)
		default:
			fmt.Fprintf(a.stdout, "%s: no data\n", r.Filename)
		}
		if len(r.Duplicates) > 0 {
			fmt.Fprintf(a.stdout, "\tsame as %s\n", strings.Join(r.Duplicates, ", "))
		}
	}
	a.logger.LogInfo(fmt.Sprintf("scanned %d files in %s", len(results), folder))
	return nil
}

func (a *app) remember(data []byte, op string) {
	if a.db == nil {
		return
	}
	if err := a.db.AddCarrier(data, op); err != nil {
		a.logger.LogWarning("failed to update history: " + err.Error())
	}
}
