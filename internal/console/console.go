// Package console is a line-oriented front end for the Coordinator. It plays
// the role of the map widget: "select" is a marker click, "click" is a map
// click, and the shop list and add-mode flag are rendered as text.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkordes/lunchmap/internal/domain"
	"github.com/pkordes/lunchmap/internal/service"
)

// Command is the first word of an input line.
type Command string

const (
	CmdShops   Command = "shops"
	CmdSelect  Command = "select"
	CmdClick   Command = "click"
	CmdAdd     Command = "add"
	CmdSet     Command = "set"
	CmdSubmit  Command = "submit"
	CmdCancel  Command = "cancel"
	CmdReviews Command = "reviews"
	CmdState   Command = "state"
	CmdHelp    Command = "help"
	CmdQuit    Command = "quit"
)

const (
	prompt         = "> "
	locationHint   = "click the map to choose the shop's location"
	noSelectedShop = "click a marker to show the shop"
)

const helpText = `Commands:
  shops                     list shops (markers)
  select <n>                click the marker of shop n
  click <lat> <lng>         click the map (add mode only)
  add                       toggle add mode
  set <field> <value...>    edit the open form
                              shop:   name address phone url
                              review: reviewer visits price taste atmosphere comment
  submit                    submit the open form
  cancel                    cancel shop registration
  reviews                   show reviews of the selected shop
  state                     show mode, selection and messages
  help                      show this help
  quit                      end the session
`

// errUsage marks a malformed command line. It is reported to the user and
// never ends the session.
var errUsage = errors.New("usage")

// failure pairs the message the user sees with the underlying error.
type failure struct {
	msg string
	err error
}

func (f *failure) Error() string { return f.msg }
func (f *failure) Unwrap() error { return f.err }

// fail wraps err with msg, falling back to err's text when msg is empty.
func fail(msg string, err error) error {
	if msg == "" {
		return err
	}
	return &failure{msg: msg, err: err}
}

// Session reads commands from in and writes results to out.
type Session struct {
	coord *service.Coordinator
	in    io.Reader
	out   io.Writer
	log   *slog.Logger
}

// New returns a Session driving coord.
func New(coord *service.Coordinator, in io.Reader, out io.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{coord: coord, in: in, out: out, log: logger}
}

// Run loads the shop list and processes commands until quit, end of input
// or ctx is done. Command failures are printed and the session continues.
func (s *Session) Run(ctx context.Context) error {
	if err := s.coord.Initialize(ctx); err != nil {
		s.log.DebugContext(ctx, "initial load failed", "error", err)
	}
	s.printState()

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		quit, err := s.Exec(ctx, scanner.Text())
		if err != nil {
			s.printError(err)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs one command line. quit is true for the quit command.
func (s *Session) Exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := Command(strings.ToLower(fields[0])), fields[1:]

	switch cmd {
	case CmdShops:
		s.printShops()
	case CmdSelect:
		err = s.selectShop(ctx, args)
	case CmdClick:
		err = s.click(ctx, args)
	case CmdAdd:
		mode := s.coord.ToggleAddMode()
		fmt.Fprintf(s.out, "mode: %s\n", mode)
		if mode == service.ModeAddingShop {
			fmt.Fprintln(s.out, locationHint)
		}
	case CmdSet:
		err = s.set(args)
	case CmdSubmit:
		err = s.submit(ctx)
	case CmdCancel:
		s.coord.OnRegistrationCancelled()
		fmt.Fprintln(s.out, "registration cancelled")
	case CmdReviews:
		s.printReviews()
	case CmdState:
		s.printState()
	case CmdHelp:
		fmt.Fprint(s.out, helpText)
	case CmdQuit, "exit", "q":
		return true, nil
	default:
		err = fmt.Errorf("%w: unknown command %q (try help)", errUsage, fields[0])
	}
	return false, err
}

func (s *Session) selectShop(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: select <n>", errUsage)
	}
	n, err := strconv.Atoi(args[0])
	shops := s.coord.Snapshot().Shops
	if err != nil || n < 1 || n > len(shops) {
		return fmt.Errorf("%w: select <n> with n between 1 and %d", errUsage, len(shops))
	}
	if err := s.coord.OnMarkerClick(ctx, shops[n-1]); err != nil {
		return fail(s.coord.Reviews().View().Message, err)
	}
	st := s.coord.Snapshot()
	if st.SelectedShop == nil {
		fmt.Fprintln(s.out, "marker clicks are ignored in add mode")
		return nil
	}
	fmt.Fprintf(s.out, "selected: %s\n", st.SelectedShop.Name)
	s.printReviews()
	return nil
}

func (s *Session) click(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: click <lat> <lng>", errUsage)
	}
	lat, err1 := strconv.ParseFloat(args[0], 64)
	lng, err2 := strconv.ParseFloat(args[1], 64)
	at := domain.Coordinate{Latitude: lat, Longitude: lng}
	if err1 != nil || err2 != nil || !at.InRange() {
		return fmt.Errorf("%w: click <lat> <lng> with lat in [-90,90] and lng in [-180,180]", errUsage)
	}
	if err := s.coord.OnMapClick(ctx, at); err != nil {
		return err
	}
	st := s.coord.Snapshot()
	if st.PendingLocation == nil {
		fmt.Fprintln(s.out, "map clicks are ignored while browsing (use add)")
		return nil
	}
	fmt.Fprintf(s.out, "location: %s\n", st.PendingLocation)
	return nil
}

// set edits the shop form while a location is pending and the review form
// otherwise.
func (s *Session) set(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: set <field> <value...>", errUsage)
	}
	field, value := strings.ToLower(args[0]), strings.Join(args[1:], " ")

	if s.coord.Snapshot().PendingLocation != nil {
		return s.setShopField(field, value)
	}
	return s.setReviewField(field, value)
}

func (s *Session) setShopField(field, value string) error {
	ok := true
	s.coord.Registration().Edit(func(d *service.ShopDraft) {
		switch field {
		case "name":
			d.Name = value
		case "address":
			d.Address = value
		case "phone":
			d.Phone = value
		case "url":
			d.URL = value
		default:
			ok = false
		}
	})
	if !ok {
		return fmt.Errorf("%w: shop fields are name, address, phone, url", errUsage)
	}
	return nil
}

func (s *Session) setReviewField(field, value string) error {
	form := s.coord.Reviews().Form()
	switch field {
	case "reviewer":
		form.SetReviewer(value)
	case "comment":
		form.SetComment(value)
	case "visits", "visitcount":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: visits must be a number", errUsage)
		}
		form.SetVisitCount(n)
	default:
		kind, ok := service.ParseRatingKind(field)
		if !ok {
			return fmt.Errorf("%w: review fields are reviewer, visits, price, taste, atmosphere, comment", errUsage)
		}
		v, err := strconv.Atoi(value)
		if err != nil || form.SetRating(kind, v) != nil {
			return fmt.Errorf("%w: %s must be between %d and %d", errUsage, field, domain.MinRating, domain.MaxRating)
		}
	}
	return nil
}

func (s *Session) submit(ctx context.Context) error {
	if s.coord.Snapshot().Mode == service.ModeAddingShop {
		shop, err := s.coord.SubmitShop(ctx)
		if err != nil {
			return fail(s.coord.Registration().Message(), err)
		}
		fmt.Fprintf(s.out, "registered: %s (%s)\n", shop.Name, shop.ID)
		s.printShops()
		return nil
	}
	review, err := s.coord.SubmitReview(ctx)
	if err != nil {
		return fail(s.coord.Reviews().Form().Message(), err)
	}
	fmt.Fprintf(s.out, "posted review by %s\n", review.Reviewer)
	s.printReviews()
	return nil
}

// printError reports a failed command. The session always continues.
func (s *Session) printError(err error) {
	s.log.Debug("command failed", "error", err)
	var f *failure
	switch {
	case errors.Is(err, service.ErrSubmitInFlight):
		fmt.Fprintln(s.out, "error: submitting...")
	case errors.As(err, &f):
		fmt.Fprintf(s.out, "error: %s\n", f.msg)
	default:
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
}

func (s *Session) printShops() {
	st := s.coord.Snapshot()
	if st.LoadError != "" {
		fmt.Fprintf(s.out, "! %s\n", st.LoadError)
	}
	if len(st.Shops) == 0 {
		fmt.Fprintln(s.out, "no shops yet")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for i, shop := range st.Shops {
		marker := " "
		if st.SelectedShop != nil && st.SelectedShop.ID == shop.ID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s%d\t%s\t%s\n", marker, i+1, shop.Name, shop.Location())
	}
	_ = tw.Flush()
}

func (s *Session) printReviews() {
	v := s.coord.Reviews().View()
	if v.Shop == nil {
		fmt.Fprintln(s.out, noSelectedShop)
		return
	}
	fmt.Fprintf(s.out, "%s\n", v.Shop.Name)
	if v.Shop.Address != "" {
		fmt.Fprintf(s.out, "  %s\n", v.Shop.Address)
	}
	if v.Shop.Phone != "" {
		fmt.Fprintf(s.out, "  tel: %s\n", v.Shop.Phone)
	}
	if v.Shop.URL != "" {
		fmt.Fprintf(s.out, "  web: %s\n", v.Shop.URL)
	}
	switch {
	case v.Loading:
		fmt.Fprintln(s.out, "  loading...")
		return
	case v.Message != "":
		fmt.Fprintf(s.out, "  ! %s\n", v.Message)
		return
	case len(v.Reviews) == 0:
		fmt.Fprintln(s.out, "  no reviews yet")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  REVIEWER\tVISITS\tPRICE\tTASTE\tATMOSPHERE\tOVERALL\tDATE\tCOMMENT")
	for _, r := range v.Reviews {
		fmt.Fprintf(tw, "  %s\t%d\t%d/5\t%d/5\t%d/5\t%d%%\t%s\t%s\n",
			r.Reviewer, r.VisitCount, r.PriceRating, r.TasteRating, r.AtmosphereRating,
			r.OverallPercent(), r.CreatedAt.Local().Format("2006-01-02"), r.Comment)
	}
	_ = tw.Flush()
}

func (s *Session) printState() {
	st := s.coord.Snapshot()
	fmt.Fprintf(s.out, "mode: %s\n", st.Mode)
	if st.LoadError != "" {
		fmt.Fprintf(s.out, "! %s\n", st.LoadError)
	}
	fmt.Fprintf(s.out, "shops: %d\n", len(st.Shops))
	if st.SelectedShop != nil {
		fmt.Fprintf(s.out, "selected: %s\n", st.SelectedShop.Name)
	}
	if st.Mode == service.ModeAddingShop && st.PendingLocation == nil {
		fmt.Fprintln(s.out, locationHint)
	}
	if st.PendingLocation != nil {
		fmt.Fprintf(s.out, "location: %s\n", st.PendingLocation)
		d := s.coord.Registration().Draft()
		fmt.Fprintf(s.out, "shop form: name=%q address=%q phone=%q url=%q\n", d.Name, d.Address, d.Phone, d.URL)
		if msg := s.coord.Registration().Message(); msg != "" {
			fmt.Fprintf(s.out, "  ! %s\n", msg)
		}
	} else if st.SelectedShop != nil {
		d := s.coord.Reviews().Form().Draft()
		fmt.Fprintf(s.out, "review form: reviewer=%q visits=%d price=%d taste=%d atmosphere=%d comment=%q\n",
			d.Reviewer, d.VisitCount, d.PriceRating, d.TasteRating, d.AtmosphereRating, d.Comment)
		if msg := s.coord.Reviews().Form().Message(); msg != "" {
			fmt.Fprintf(s.out, "  ! %s\n", msg)
		}
	}
}
