package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpfielding/dcmattr.go/pkg/config"
	"github.com/jpfielding/dcmattr.go/pkg/dicom"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/stream"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/uid"
)

// sampleDataset is a small CT image with a horizontal gradient
func sampleDataset(rows, cols uint16, now time.Time) (*dicom.Collection, error) {
	pixels := make([]uint16, int(rows)*int(cols))
	for i := range pixels {
		pixels[i] = uint16(i%int(cols)) * 16
	}
	return dicom.Build(nil,
		dicom.WithCharacterSet("ISO_IR 192"),
		dicom.WithNewInstance(uid.Resolve(uid.CTImageStorage)),
		dicom.WithValue(tag.StudyDate, now),
		dicom.WithValue(tag.StudyTime, now),
		dicom.WithValue(tag.Modality, "CT"),
		dicom.WithValue(tag.StudyDescription, "dcmctl sample"),
		dicom.WithValue(tag.PatientName, "Sample^Patient"),
		dicom.WithValue(tag.PatientID, "DCMCTL-0001"),
		dicom.WithValue(tag.StudyInstanceUID, uid.New()),
		dicom.WithValue(tag.InstanceNumber, 1),
		dicom.WithValue(tag.ImageType, []string{"ORIGINAL", "PRIMARY", "AXIAL"}),
		dicom.WithValue(tag.SamplesPerPixel, uint16(1)),
		dicom.WithValue(tag.PhotometricInterpretation, "MONOCHROME2"),
		dicom.WithValue(tag.Rows, rows),
		dicom.WithValue(tag.Columns, cols),
		dicom.WithValue(tag.PixelSpacing, []float64{0.5, 0.5}),
		dicom.WithValue(tag.BitsAllocated, uint16(16)),
		dicom.WithValue(tag.BitsStored, uint16(12)),
		dicom.WithValue(tag.HighBit, uint16(11)),
		dicom.WithValue(tag.PixelRepresentation, uint16(0)),
		dicom.WithValue(tag.PixelData, pixels),
	)
}

// NewSampleCmd writes a generated data set
func NewSampleCmd(ctx context.Context, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "write a small sample data set",
		Long:  "Writes a generated CT image data set as a raw stream in the chosen transfer syntax.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			ts, err := syntaxFlag(cmd, "syntax", cfg)
			if err != nil {
				return err
			}
			rows, _ := cmd.Flags().GetUint16("rows")
			cols, _ := cmd.Flags().GetUint16("cols")
			c, err := sampleDataset(rows, cols, time.Now())
			if err != nil {
				return err
			}
			n, err := stream.WriteFile(out, c, ts, cfg.Write)
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "wrote sample", "out", out, "syntax", ts.Name(), "bytes", n)
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("out", "o", "", "output path")
	pf.StringP("syntax", "s", "", "transfer syntax UID or implicit|explicit|big|deflated")
	pf.Uint16("rows", 16, "image rows")
	pf.Uint16("cols", 16, "image columns")
	return cmd
}
