package badge

import "text/template"

var badgeTemplate = template.Must(template.New("badge").Parse(`<svg width="{{ .Width }}" height="{{ .Height }}" viewBox="0 0 {{ .Width }} {{ .Height }}" fill="none" xmlns="http://www.w3.org/2000/svg">
  <style>
    .header {
      font: 600 18px 'Segoe UI', Ubuntu, Sans-Serif;
      fill: #2f80ed;
      animation: fadeInAnimation 0.8s ease-in-out forwards;
    }
    .lang-name { font: 400 11px 'Segoe UI', Ubuntu, Sans-Serif; fill: #333 }

    /* Animations */
    @keyframes scaleInAnimation {
      from {
        transform: translate(-5px, 5px) scale(0);
      }
      to {
        transform: translate(-5px, 5px) scale(1);
      }
    }
    @keyframes fadeInAnimation {
      from {
        opacity: 0;
      }
      to {
        opacity: 1;
      }
    }
    * { animation-duration: 0s !important; animation-delay: 0s !important; }
  </style>

  <rect data-testid="card-bg" x="0.5" y="0.5" rx="4.5" height="99%" stroke="#e4e2e2" width="{{ .CardWidth }}" fill="#fffefe" stroke-opacity="1" />

  <g data-testid="card-title" transform="translate(25, 35)">
    <g transform="translate(0, 0)">
      <text x="0" y="0" class="header" data-testid="header">{{ .Title | html }}</text>
    </g>
  </g>

  <g data-testid="main-card-body" transform="translate(0, 55)">
    <svg data-testid="lang-items" x="25">
      <mask id="rect-mask">
        <rect x="0" y="0" width="{{ .BarWidth }}" height="{{ .BarHeight }}" fill="white" rx="5" />
      </mask>
{{- range .Segments }}
      <rect mask="url(#rect-mask)" data-testid="lang-progress" x="{{ .X }}" y="0" width="{{ .Width }}" height="{{ $.BarHeight }}" fill="{{ .Color | html }}" />
{{- end }}
{{- range .Legend }}
      <g transform="translate({{ .TranslateX }}, {{ .TranslateY }})">
        <circle cx="5" cy="6" r="5" fill="{{ .Color | html }}" />
        <text data-testid="lang-name" x="15" y="10" class="lang-name">{{ .Name | html }} {{ .Percentage }}%</text>
      </g>
{{- end }}
{{- if .Empty }}
      <g transform="translate(0, 25)">
        <text data-testid="no-data" x="0" y="10" class="lang-name">{{ .EmptyMessage | html }}</text>
      </g>
{{- end }}
    </svg>
  </g>
</svg>
`))
