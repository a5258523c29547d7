package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"staybook/internal/app"
	"staybook/internal/domain"
	"staybook/internal/modules/booking"
	"staybook/internal/modules/catalog"
	"staybook/internal/modules/profile"
)

const (
	CmdProperties = "properties"
	CmdProperty   = "property"
	CmdBook       = "book"
	CmdBookings   = "bookings"
	CmdProfile    = "profile"
	CmdLogout     = "logout"
)

// RetryMessage is what screens show for any load failure.
const RetryMessage = "Something went wrong. Please try again."

var ErrUnknownCommand = errors.New("unknown command")

type Options struct {
	Cmd        string
	Query      string
	PropertyID string
	CheckIn    string
	CheckOut   string
}

// Run renders one screen to out.
func Run(ctx context.Context, a *app.App, opts Options, out io.Writer) error {
	switch opts.Cmd {
	case CmdProperties:
		return properties(ctx, a, opts.Query, out)
	case CmdProperty:
		return propertyDetails(ctx, a, opts.PropertyID, out)
	case CmdBook:
		return book(ctx, a, opts, out)
	case CmdBookings:
		return bookings(ctx, a, out)
	case CmdProfile:
		return profileScreen(ctx, a, out)
	case CmdLogout:
		return logout(a, out)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, opts.Cmd)
	}
}

func properties(ctx context.Context, a *app.App, query string, out io.Writer) error {
	// Booked badges come from the store; a failed load only hides them.
	_, _ = a.Booking.ListBookings(ctx)

	items, err := a.Catalog.ListProperties(ctx, query)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "No properties found")
		return nil
	}
	for _, l := range items {
		fmt.Fprintf(out, "%-4s %-28s %10s/month  %s", l.ID, l.Title, catalog.FormatPrice(l.Price), catalog.FormatAddress(l.Location))
		if l.Booked {
			fmt.Fprint(out, "  [Booked]")
		}
		fmt.Fprintln(out)
	}
	return nil
}

func propertyDetails(ctx context.Context, a *app.App, id string, out io.Writer) error {
	d, err := a.Catalog.Details(ctx, id)
	if err != nil {
		return err
	}
	p := d.Property
	fmt.Fprintln(out, p.Title)
	fmt.Fprintf(out, "%s / month\n", catalog.FormatPrice(p.Price))
	fmt.Fprintln(out, catalog.FormatAddress(p.Location))
	if len(p.Features) > 0 {
		fmt.Fprintf(out, "Features: %s\n", strings.Join(p.Features, ", "))
	}
	if img := p.CoverImage(); img != "" {
		fmt.Fprintf(out, "Image: %s\n", img)
	}
	if d.Booked {
		fmt.Fprintln(out, "You have already booked this property")
	} else {
		fmt.Fprintf(out, "Book it: -cmd book -id %s -check-in YYYY-MM-DD -check-out YYYY-MM-DD\n", p.ID)
	}
	return nil
}

func book(ctx context.Context, a *app.App, opts Options, out io.Writer) error {
	d, err := a.Catalog.Details(ctx, opts.PropertyID)
	if err != nil {
		return err
	}
	if d.Booked {
		fmt.Fprintln(out, "You have already booked this property")
		return nil
	}

	form := booking.NewForm(today())
	if opts.CheckIn != "" {
		in, err := time.Parse(domain.DateLayout, opts.CheckIn)
		if err != nil {
			return fmt.Errorf("check-in: %w", err)
		}
		form.SelectCheckIn(in)
	}
	if opts.CheckOut != "" {
		outDate, err := time.Parse(domain.DateLayout, opts.CheckOut)
		if err != nil {
			return fmt.Errorf("check-out: %w", err)
		}
		checkIn, _ := form.Dates()
		form.SetDates(checkIn, outDate)
	}

	created, err := a.Booking.Submit(ctx, opts.PropertyID, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Booked %s %s -> %s (%s)\n", created.Property.Title, created.CheckIn, created.CheckOut, created.Status)
	return nil
}

func bookings(ctx context.Context, a *app.App, out io.Writer) error {
	list, err := a.Booking.ListBookings(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No bookings yet")
		return nil
	}
	for _, b := range list {
		fmt.Fprintf(out, "%-28s %s -> %s  %-9s %s\n",
			b.Property.Title, b.CheckIn, b.CheckOut, b.Status, catalog.FormatAddress(b.Property.Location))
	}
	return nil
}

func profileScreen(ctx context.Context, a *app.App, out io.Writer) error {
	p, err := a.Profile.Load(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, p.Name)
	fmt.Fprintln(out, p.Email)
	fmt.Fprintf(out, "Total bookings: %d\n", profile.StatsFor(p).TotalBookings)
	return nil
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func logout(a *app.App, out io.Writer) error {
	a.Profile.Logout()
	fmt.Fprintln(out, "Logged out")
	return nil
}
