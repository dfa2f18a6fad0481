package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aryankumar/parex/pkg/source/kube"
)

// newKubeCmd creates the kube command
func newKubeCmd(a *app) *cobra.Command {
	var (
		selector     string
		noServices   bool
		checkTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "kube",
		Short: "Search namespaces, pods and services of a cluster",
		Long: `Search a Kubernetes cluster in parallel.

Namespaces are containers at depth 0; pods (primary) and services (other)
sit below them at depth 1 with paths of the form namespace/name. Namespaces
the current user may not read are skipped and counted as failures.`,
		Example: `  # Find nginx pods and services in every namespace
  parex kube --name nginx

  # Pods only, in two namespaces, using a specific context
  parex kube --context prod -n default -n web --expr 'kind == "primary"'

  # Namespaces only
  parex kube --max-depth 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k := a.settings.Kube

			opts := []kube.Option{kube.WithLabelSelector(selector)}
			if len(k.Namespaces) > 0 {
				opts = append(opts, kube.WithNamespaces(k.Namespaces...))
			}
			if noServices {
				opts = append(opts, kube.WithoutServices())
			}

			a.logger.Debug("connecting to cluster",
				"kubeconfig", k.Kubeconfig,
				"context", k.Context,
				"namespaces", strings.Join(k.Namespaces, ","))

			src, err := kube.NewFromKubeconfig(k.Kubeconfig, k.Context, opts...)
			if err != nil {
				return err
			}

			serverVersion, err := src.HealthCheck(cmd.Context(), checkTimeout)
			if err != nil {
				return err
			}
			a.logger.Debug("cluster is reachable", "version", serverVersion)

			return a.runSearch(cmd, src)
		},
	}

	cmd.Flags().String("kubeconfig", "", "path to kubeconfig file (default is $KUBECONFIG or $HOME/.kube/config)")
	cmd.Flags().String("context", "", "kubeconfig context to use (default is the current context)")
	_ = cmd.RegisterFlagCompletionFunc("context", completeKubeContexts)
	cmd.Flags().StringSliceP("namespace", "n", nil, "namespaces to search (default is all namespaces)")
	cmd.Flags().StringVarP(&selector, "selector", "l", "", "label selector for pods and services")
	cmd.Flags().BoolVar(&noServices, "no-services", false, "skip services")
	cmd.Flags().DurationVar(&checkTimeout, "check-timeout", kube.DefaultCheckTimeout, "how long to wait for the cluster to answer before searching")

	return cmd
}
