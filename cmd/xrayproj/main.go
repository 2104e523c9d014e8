package main

import (
	"fmt"
	"os"

	"github.com/lukaszgryglicki/xrayproj/internal/xrayproj"
	"github.com/pkg/profile"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "xrayproj"
	app.Usage = "render X-ray transmission projections of a parametric object"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Usage:    "Input yaml or json file describing the object",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "output_dir",
			Usage: "Output directory to save the images",
			Value: xrayproj.DefaultOutputDir,
		},
		&cli.StringFlag{
			Name:  "fname_pattern",
			Usage: "Sprintf pattern for output file name",
			Value: xrayproj.DefaultFnamePattern,
		},
		&cli.IntFlag{
			Name:  "num_projections",
			Usage: "Number of projections to generate",
			Value: xrayproj.DefaultNumImages,
		},
		&cli.IntFlag{
			Name:  "resolution",
			Usage: "Resolution of the square output images",
			Value: xrayproj.DefaultResolution,
		},
		&cli.BoolFlag{
			Name:  "out_of_plane",
			Usage: "Draw a random polar angle for every projection",
		},
		&cli.Float64Flag{
			Name:  "polar_angle",
			Usage: "Fixed polar angle in degrees",
			Value: xrayproj.DefaultPolarAngle,
		},
		&cli.Float64Flag{
			Name:  "ds",
			Usage: "Integration step size. If negative, infer from the smallest feature size in the input file",
			Value: xrayproj.DefaultDS,
		},
		&cli.Float64Flag{
			Name:  "R",
			Usage: "Distance between camera and centre of scene",
			Value: xrayproj.DefaultR,
		},
		&cli.Float64Flag{
			Name:  "fov",
			Usage: "Field of view in degrees",
			Value: xrayproj.DefaultFOV,
		},
		&cli.StringFlag{
			Name:  "integration",
			Usage: "Integration method to use. Options are 'simple' or 'hierarchical'",
			Value: xrayproj.DefaultIntegration,
		},
		&cli.Float64Flag{
			Name:  "flat_field",
			Usage: "Flat field value to add to all pixels",
		},
		&cli.Float64Flag{
			Name:  "density_multiplier",
			Usage: "Multiply all densities by this number",
			Value: xrayproj.DefaultDensityMultiplier,
		},
		&cli.IntFlag{
			Name: "jobs_modulo",
			Usage: "Number of jobs which are being run independently" +
				" (e.g. jobs_modulo=4 will render every 4th projection)",
			Value: xrayproj.DefaultJobsModulo,
		},
		&cli.IntFlag{
			Name: "job",
			Usage: "Job number to run" +
				" (e.g. job=1 with jobs_modulo=4 will render projections 1, 5, 9, ...)",
		},
		&cli.StringFlag{
			Name:  "transforms_file",
			Usage: "Output file to save the transform parameters",
			Value: xrayproj.DefaultTransformsFile,
		},
		&cli.StringFlag{
			Name:  "deformation_file",
			Usage: "File containing deformation parameters",
		},
		&cli.Float64Flag{
			Name:  "time_label",
			Usage: "Label to pass to image metadata",
		},
		&cli.BoolFlag{
			Name:  "text_progress",
			Usage: "Use text progress output instead of a progress bar",
		},
		&cli.BoolFlag{
			Name:  "transparency",
			Usage: "Enable transparency in output images",
		},
		&cli.BoolFlag{
			Name:  "export_volume",
			Usage: "Export the sampled volume grid to a file",
		},
		&cli.BoolFlag{
			Name:  "profile",
			Usage: "Write a CPU profile next to the binary",
		},
		&cli.BoolFlag{
			Name:  "v",
			Usage: "Enable verbose logging",
		},
	}
	app.Action = func(c *cli.Context) error {
		if c.Bool("profile") {
			defer profile.Start(profile.ProfilePath(".")).Stop()
		}
		params := xrayproj.DefaultParams()
		params.Input = c.String("input")
		params.OutputDir = c.String("output_dir")
		params.FnamePattern = c.String("fname_pattern")
		params.Resolution = c.Int("resolution")
		params.NumImages = c.Int("num_projections")
		params.OutOfPlane = c.Bool("out_of_plane")
		params.PolarAngle = c.Float64("polar_angle")
		params.DS = c.Float64("ds")
		params.R = c.Float64("R")
		params.FOV = c.Float64("fov")
		params.Integration = c.String("integration")
		params.FlatField = c.Float64("flat_field")
		params.DensityMultiplier = c.Float64("density_multiplier")
		params.JobsModulo = c.Int("jobs_modulo")
		params.JobNum = c.Int("job")
		params.TransformsFile = c.String("transforms_file")
		params.DeformationFile = c.String("deformation_file")
		params.TimeLabel = c.Float64("time_label")
		params.Transparency = c.Bool("transparency")
		params.ExportVolume = c.Bool("export_volume")
		params.TextProgress = c.Bool("text_progress")
		if c.Bool("v") {
			params.LogLevel = "info"
		} else {
			params.LogLevel = "warn"
		}

		result := xrayproj.Run(params)
		if !result.Success {
			return fmt.Errorf("%s", result.Error)
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
