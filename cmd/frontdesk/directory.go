package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Freeeeeet/clinic_frontdesk/internal/controller/formatting"
	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

func doctorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Manage the doctor directory",
	}

	var (
		doctor model.Doctor
		days   []int
	)

	add := &cobra.Command{
		Use:   "add",
		Short: "Register a doctor with working hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			doctor.WorkingHours.WorkingDays = weekdays(days)
			if err := rt.doctors.Register(cmd.Context(), &doctor); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Doctor registered: %s\n", doctor.ID)
			return nil
		},
	}

	flags := add.Flags()
	flags.StringVar(&doctor.ID, "id", "", "doctor ID (generated when empty)")
	flags.StringVar(&doctor.FirstName, "first-name", "", "first name")
	flags.StringVar(&doctor.LastName, "last-name", "", "last name")
	flags.StringVar(&doctor.Specialization, "specialization", "", "specialization")
	flags.StringVar(&doctor.Phone, "phone", "", "phone")
	flags.StringVar(&doctor.Email, "email", "", "email")
	flags.StringVar(&doctor.LicenseNumber, "license", "", "license number")
	flags.IntVar(&doctor.Experience, "experience", 0, "experience in years")
	flags.IntVar(&doctor.ConsultationFee, "fee", 0, "consultation fee in kopecks")
	flags.StringVar(&doctor.WorkingHours.Start, "start", "09:00", "start of the working day, HH:MM")
	flags.StringVar(&doctor.WorkingHours.End, "end", "17:00", "end of the working day, HH:MM")
	flags.IntSliceVar(&days, "days", []int{1, 2, 3, 4, 5}, "working weekdays, 0 = Sunday")
	_ = add.MarkFlagRequired("first-name")

	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			doctors, err := rt.doctors.List(cmd.Context())
			if err != nil {
				return err
			}

			printDoctors(cmd.OutOrStdout(), doctors)
			return nil
		},
	})

	return cmd
}

func paymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Manage appointment payments",
	}

	var (
		payment model.Payment
		method  string
		status  string
	)

	add := &cobra.Command{
		Use:   "add",
		Short: "Record a payment for an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			payment.Method = model.PaymentMethod(method)
			payment.Status = model.PaymentStatus(status)
			if err := rt.payments.Record(cmd.Context(), &payment); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Payment recorded: %s (%s)\n", payment.ID, formatting.FormatPriceShort(payment.Amount))
			return nil
		},
	}

	flags := add.Flags()
	flags.StringVar(&payment.AppointmentID, "appointment", "", "appointment ID")
	flags.IntVar(&payment.Amount, "amount", 0, "amount in kopecks")
	flags.StringVar(&method, "method", string(model.PaymentMethodCard), "cash, card, insurance or transfer")
	flags.StringVar(&status, "status", string(model.PaymentStatusPending), "pending, paid, failed or refunded")
	flags.StringVar(&payment.TransactionID, "transaction", "", "external transaction ID")
	_ = add.MarkFlagRequired("appointment")
	_ = add.MarkFlagRequired("amount")

	cmd.AddCommand(add)
	return cmd
}

func weekdays(days []int) []time.Weekday {
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, time.Weekday(d))
	}
	return out
}

func printDoctors(w io.Writer, doctors []*model.Doctor) {
	if len(doctors) == 0 {
		fmt.Fprintln(w, "No doctors registered")
		return
	}

	for _, d := range doctors {
		fmt.Fprintf(w, "%s  %s  %s-%s  %s\n",
			d.ID,
			d.FullName(),
			d.WorkingHours.Start,
			d.WorkingHours.End,
			formatting.FormatWorkingDays(d.WorkingHours.WorkingDays),
		)
	}
}
