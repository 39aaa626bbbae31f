package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/inkboard/internal/dashboard"
	"github.com/cleared-dev/inkboard/internal/log"
	"github.com/cleared-dev/inkboard/internal/render"
)

var viewCommands = []struct {
	name  string
	short string
}{
	{dashboard.ViewClients, "Client growth and contact coverage"},
	{dashboard.ViewFinance, "Revenue, expenses, categories and payment status"},
	{dashboard.ViewSchedules, "Appointments by status and month"},
	{dashboard.ViewWidgets, "The configured widget panel"},
}

func newViewCommand(opts *globalOptions, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts, name)
		},
	}
}

func newShowCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "show <view>",
		Short:     "Print a view by name",
		Args:      cobra.ExactArgs(1),
		ValidArgs: dashboard.Views,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts, args[0])
		},
	}
}

func runView(cmd *cobra.Command, opts *globalOptions, name string) error {
	if err := dashboard.CheckView(name); err != nil {
		return err
	}
	s, err := opts.open(cmd)
	if err != nil {
		return err
	}
	r, err := s.records()
	if err != nil {
		return err
	}
	s.logger.WithComponent(log.ComponentDashboard).Debug("computing view", log.FieldView, name)

	var out any
	switch name {
	case dashboard.ViewClients:
		out = dashboard.Clients(r.Clients, s.window)
	case dashboard.ViewFinance:
		out = dashboard.Finance(r.Transactions, s.window)
	case dashboard.ViewSchedules:
		out = dashboard.Schedules(r.Appointments, s.window)
	case dashboard.ViewWidgets:
		widgets, err := dashboard.Widgets(r, s.window, s.cfg.Widgets)
		if err != nil {
			return err
		}
		out = widgets
	}

	if s.json {
		return render.JSON(cmd.OutOrStdout(), out)
	}

	p := s.printer(cmd)
	switch v := out.(type) {
	case dashboard.ClientsView:
		return p.Clients(v)
	case dashboard.FinanceView:
		return p.Finance(v)
	case dashboard.SchedulesView:
		return p.Schedules(v)
	case []dashboard.Widget:
		return p.Widgets(v)
	}
	return nil
}
