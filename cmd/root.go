package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cascade-sim/cascade-sim/cascade"
	"github.com/cascade-sim/cascade-sim/cascade/dataset"
)

var (
	// CLI flags for table selection and classification
	dataDir          string  // dataset directory containing manifest.yaml
	interactionModel string  // interaction model for yields and cross-sections
	charmModel       string  // optional submodel injected over the base yields
	crossover        float64 // decay/interaction length ratio separating regimes
	noMix            bool    // disable mixed classification
	mbarn            bool    // print cross-sections in mbarn instead of cm^2
	logLevel         string  // log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cascade-sim",
	Short: "Tabulated-data management for atmospheric particle-cascade transport",
}

// classifyCmd loads a dataset, builds the tables and prints every tracked
// particle's transport regime.
var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify each particle's energy regime for a dataset and model",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		ds, err := dataset.Load(dataDir)
		if err != nil {
			logrus.Fatalf("Unable to load dataset from %s: %v", dataDir, err)
		}
		if ds.Decays == nil || ds.Particles == nil {
			logrus.Fatalf("Dataset %s is missing decay or particle tables", dataDir)
		}

		yields, err := cascade.NewInteractionYields(ds.Yields, ds.CrossSections, interactionModel)
		if err != nil {
			logrus.Fatalf("Unable to select interaction model: %v", err)
		}
		if charmModel != "" {
			// MRS needs an external yielder and is reachable through the
			// API only; the CLI supports the self-contained submodel.
			if charmModel != cascade.SubmodelSibyllPL {
				logrus.Fatalf("Submodel %q is not available from the CLI", charmModel)
			}
			if err := yields.InjectSubmodel(charmModel, nil); err != nil {
				logrus.Fatalf("Unable to inject submodel: %v", err)
			}
		}
		decays, err := cascade.NewDecayYields(ds.Decays, yields.Grid())
		if err != nil {
			logrus.Fatalf("Unable to build decay table: %v", err)
		}
		cs, err := cascade.NewCrossSectionTable(ds.CrossSections, interactionModel)
		if err != nil {
			logrus.Fatalf("Unable to select cross-section model: %v", err)
		}

		cfg := cascade.RegimeConfig{CrossoverThreshold: crossover, DisableMixing: noMix}
		parts := cascade.NewParticleList(cascade.ParticleIDs(yields, decays), ds.Particles, yields.Grid(), cs, cfg)

		unit := cascade.UnitCm2
		unitName := "cm^2"
		if mbarn {
			unit = cascade.UnitMbarn
			unitName = "mbarn"
		}

		fmt.Printf("model=%s submodel=%q species=%d grid=%d bins, cross-sections in %s\n",
			yields.Model(), yields.Submodel(), parts.Len(), parts.Dim(), unitName)
		fmt.Printf("%6s %-14s %8s %10s %10s %10s %-9s\n", "pdg", "name", "slot", "E_mix", "E_crit", "sigma_top", "regime")
		for _, tp := range parts.All() {
			regime := "hadron"
			switch {
			case tp.Regime.IsMixed:
				regime = "mixed"
			case tp.Regime.IsResonance:
				regime = "resonance"
			}
			curve := cs.CrossSection(tp.ID, unit)
			fmt.Printf("%6d %-14s %8d %10.3e %10.3e %10.3e %-9s\n",
				tp.ID, tp.Name, tp.Slot, tp.Regime.EMix, tp.ECrit, curve.AtVec(curve.Len()-1), regime)
		}

		couplings, err := cascade.AssembleCouplings(parts, yields, decays)
		if err != nil {
			logrus.Fatalf("Unable to assemble coupling matrices: %v", err)
		}
		r, c := couplings.Interactions.Dims()
		logrus.Infof("Assembled %dx%d interaction and decay coupling matrices", r, c)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	classifyCmd.Flags().StringVar(&dataDir, "data-dir", "data", "Dataset directory containing manifest.yaml")
	classifyCmd.Flags().StringVar(&interactionModel, "interaction-model", "SIBYLL2.3", "Interaction model name")
	classifyCmd.Flags().StringVar(&charmModel, "charm-model", "", "Submodel to inject over the base yields (SIBYLL23_PL)")
	classifyCmd.Flags().Float64Var(&crossover, "crossover", cascade.DefaultRegimeConfig().CrossoverThreshold,
		"Decay/interaction length ratio separating resonance from hadron behavior")
	classifyCmd.Flags().BoolVar(&noMix, "no-mix", false, "Disable mixed classification")
	classifyCmd.Flags().BoolVar(&mbarn, "mbarn", false, "Report cross-sections in mbarn instead of cm^2")
	classifyCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(classifyCmd)
}
