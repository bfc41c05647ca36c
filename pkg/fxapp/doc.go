/*
Package fxapp builds upon https://godoc.org/go.uber.org/fx to provide a standardized functional driven application container.

Application Aspects

  - all apps must have an identity
    - each app is assigned a unique ID
      - application names may change, but the app ID is immutable
    - each app deployment is assigned a release ID
  - all running application instances are identified via an instance ID
    - used for troubleshooting, e.g., querying for application instance logs
  - application logging is structured
    - zerolog is used to provided structured JSON logging
    - lifecycle events are strongly typed and identified by ULID event type IDs
  - configuration is loaded from the env, using the APPX12 prefix
  - readiness is explicit
    - ready listeners are registered on the Builder and run once, after the app has started
*/
package fxapp
