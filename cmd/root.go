package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pkdose/pkdose/pk"
	"github.com/pkdose/pkdose/pk/report"
	"github.com/pkdose/pkdose/server"
)

var (
	// CLI flags shared by the subcommands
	logLevel   string // Log verbosity level
	rangesFile string // Optional therapeutic-range override file (YAML)

	// CLI flags for one evaluation (the form fields)
	patientName string  // Patient name (report metadata only)
	recordID    string  // Patient record ID (report metadata only)
	weight      float64 // Patient weight in kg
	ageValue    float64 // Patient age, interpreted per --age-unit
	ageUnit     string  // days, months or years
	creatinine  float64 // Serum creatinine in mg/dL
	antibiotic  string  // Antibiotic identifier
	dose        float64 // Dose in mg (mg/day for continuous vancomycin)
	interval    float64 // Dosing interval in h
	level       float64 // Measured serum level in µg/mL (optional)
	levelType   string  // peak, trough or random (optional)
	levelTime   float64 // Draw time in h for level-type=random
	jsonOut     bool    // Emit the report as JSON instead of text

	// CLI flags for the HTTP server
	addr string // Listen address; PKDOSE_ADDR or :8080 when empty
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "pkdose",
	Short: "Pharmacokinetic dose evaluation for vancomycin and aminoglycosides",
}

func setupLogging() {
	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(lvl)
}

// loadEngine builds the Engine over the built-in range table, with
// --ranges overrides applied when the flag is set.
func loadEngine() *pk.Engine {
	table, err := LoadRanges(rangesFile)
	if err != nil {
		logrus.Fatalf("Failed to load therapeutic ranges: %v", err)
	}
	return pk.NewEngine(table)
}

// evaluateCmd runs one evaluation from CLI flags and prints the report.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one dosing regimen from patient parameters",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		engine := loadEngine()

		in := pk.PatientInput{
			Name:       patientName,
			RecordID:   recordID,
			Weight:     weight,
			AgeValue:   ageValue,
			AgeUnit:    pk.AgeUnit(ageUnit),
			Creatinine: creatinine,
			Antibiotic: pk.Antibiotic(antibiotic),
			Dose:       dose,
			Interval:   interval,
			LevelType:  pk.LevelType(levelType),
		}
		// The flag default is 0, which is also not a valid level; use
		// Changed() so "not given" and "given as zero" stay distinct.
		if cmd.Flags().Changed("level") {
			in.MeasuredLevel = &level
		}
		if cmd.Flags().Changed("level-time") {
			in.RandomTime = &levelTime
		}

		res, err := engine.Run(in)
		if err != nil {
			logrus.Fatalf("Evaluation failed: %v", err)
		}
		logrus.Debugf("clearance=%.2f mL/min ke=%.5f 1/h", res.Kinetics.Clearance, res.Kinetics.Ke)

		rep := report.New(res, engine.Ranges())
		if jsonOut {
			out, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				logrus.Fatalf("Failed to encode report: %v", err)
			}
			fmt.Println(string(out))
			return
		}
		fmt.Print(rep.Text())
	},
}

// serveCmd starts the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluation API over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		engine := loadEngine()

		// .env is optional; real env vars win either way.
		_ = godotenv.Load()
		listen := addr
		if listen == "" {
			listen = os.Getenv("PKDOSE_ADDR")
		}
		if listen == "" {
			listen = ":8080"
		}

		log := logrus.StandardLogger()
		srv := &http.Server{
			Addr:              listen,
			Handler:           server.New(engine, log),
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			log.Infof("Listening on %s", listen)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Server failed: %v", err)
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("Shutdown: %v", err)
		}
		log.Info("Server stopped.")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&rangesFile, "ranges", "", "Path to a therapeutic-range override file (YAML)")

	evaluateCmd.Flags().StringVar(&patientName, "name", "", "Patient name")
	evaluateCmd.Flags().StringVar(&recordID, "record", "", "Patient record ID")
	evaluateCmd.Flags().Float64Var(&weight, "weight", 0, "Weight in kg")
	evaluateCmd.Flags().Float64Var(&ageValue, "age", 0, "Age, interpreted per --age-unit")
	evaluateCmd.Flags().StringVar(&ageUnit, "age-unit", "years", "Age unit: days, months or years")
	evaluateCmd.Flags().Float64Var(&creatinine, "creatinine", 0, "Serum creatinine in mg/dL")
	evaluateCmd.Flags().StringVar(&antibiotic, "antibiotic", "", "One of: vancomycin_intermittent, vancomycin_continuous, gentamicin, amikacin, tobramycin")
	evaluateCmd.Flags().Float64Var(&dose, "dose", 0, "Dose in mg (mg/day for continuous vancomycin)")
	evaluateCmd.Flags().Float64Var(&interval, "interval", 0, "Dosing interval in h")
	evaluateCmd.Flags().Float64Var(&level, "level", 0, "Measured serum level in µg/mL")
	evaluateCmd.Flags().StringVar(&levelType, "level-type", "", "Measured level type: peak, trough or random")
	evaluateCmd.Flags().Float64Var(&levelTime, "level-time", 0, "Draw time in h after dose start (level-type=random)")
	evaluateCmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")

	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides PKDOSE_ADDR)")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalf("Command failed: %v", err)
	}
}
