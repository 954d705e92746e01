package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"extract-store/internal/config"
	"extract-store/internal/domain"
	"extract-store/internal/repository"
	"extract-store/internal/service"
)

var errNoFields = errors.New(service.MsgNoFields)

func newExtractCmd() *cobra.Command {
	var (
		store      bool
		merge      bool
		selectPath string
	)
	cmd := &cobra.Command{
		Use:   "extract [file...]",
		Short: "Extract the record from one or more JSON files (stdin when omitted or '-')",
		Long: "Prints the first_name, middle_name, last_name and zip_code record found in each payload. " +
			"With --merge the files feed a single record in order. With --store the payload is handled " +
			"exactly like an API request and written to the configured bucket. --select picks the payload " +
			"out of a larger document, e.g. 'body' for a captured API Gateway event.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			if store && merge {
				return errors.New("--store and --merge cannot be combined")
			}
			load := func(path string) ([]byte, error) {
				body, err := readPayload(cmd, path)
				if err != nil {
					return nil, err
				}
				return selectPayload(body, selectPath)
			}
			if store {
				return runExtractStore(cmd, args, load)
			}
			if merge {
				return runExtractMerge(cmd, args, load)
			}
			for _, path := range args {
				body, err := load(path)
				if err != nil {
					return err
				}
				tree, err := service.ParsePayload(body)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if err := printRecord(cmd, service.Extract(tree)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&store, "store", false, "persist each record through the configured storage backend")
	cmd.Flags().BoolVar(&merge, "merge", false, "accumulate all files into a single record")
	cmd.Flags().StringVar(&selectPath, "select", "", "gjson path of the payload inside each document")
	return cmd
}

type payloadLoader func(path string) ([]byte, error)

func runExtractMerge(cmd *cobra.Command, args []string, load payloadLoader) error {
	var rec domain.Record
	for _, path := range args {
		body, err := load(path)
		if err != nil {
			return err
		}
		tree, err := service.ParsePayload(body)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		// Sin nombre: la raiz de cada archivo no puede coincidir con un campo.
		if service.ExtractInto(&rec, "", tree) {
			zap.L().Debug("record complete", zap.String("file", path))
			break
		}
	}
	return printRecord(cmd, rec)
}

func runExtractStore(cmd *cobra.Command, args []string, load payloadLoader) error {
	ctx := cmd.Context()
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	blobs, closeBlobs, err := repository.OpenBlobRepository(ctx, cfg, zap.L())
	if err != nil {
		return err
	}
	defer closeBlobs()

	svc := service.NewExtractService(zap.L(), blobs, cfg.BucketName, service.StorageKeyer{Suffix: cfg.KeySuffix}, nil)
	for _, path := range args {
		body, err := load(path)
		if err != nil {
			return err
		}
		resp, err := svc.Handle(ctx, body, time.Now().UTC().UnixMilli())
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s: %s", path, resp.Body)
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Body)
	}
	return nil
}

func readPayload(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return body, nil
}

// selectPayload devuelve el valor en path. Un string se toma como el JSON serializado
// (el body de un evento de API Gateway llega asi).
func selectPayload(body []byte, path string) ([]byte, error) {
	if path == "" {
		return body, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, service.ErrMalformedPayload
	}
	res := gjson.GetBytes(body, path)
	if !res.Exists() {
		return nil, fmt.Errorf("select %q: path not found", path)
	}
	if res.Type == gjson.String {
		return []byte(res.Str), nil
	}
	return []byte(res.Raw), nil
}

func printRecord(cmd *cobra.Command, rec domain.Record) error {
	if rec.IsEmpty() {
		return errNoFields
	}
	data, err := rec.Marshal()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
