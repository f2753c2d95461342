package service

import (
	"smart_irrigation"
)

// Recommendation thresholds.
const (
	criticalMoisturePct    = 40.0
	attentionMoisturePct   = 60.0
	highRainProbabilityPct = 60.0
	lowRainProbabilityPct  = 40.0
)

// Recommend combines moisture, forecast rain probability and connectivity
// into a prioritized action. The priority order is the contract: an
// offline sensor wins over everything, critical dryness wins over a rain
// forecast, and only a well-watered field waits for rain.
func Recommend(moisture, rainProbability float64, online bool) smart_irrigation.Recommendation {
	if !online {
		return smart_irrigation.Recommendation{
			Kind:     smart_irrigation.RecommendOfflineAlert,
			Severity: smart_irrigation.SeverityCritical,
			Message:  "Sensor Offline - Verifique a conexão",
		}
	}
	if moisture < criticalMoisturePct {
		return smart_irrigation.Recommendation{
			Kind:     smart_irrigation.RecommendIrrigateNow,
			Severity: smart_irrigation.SeverityCritical,
			Message:  "Irrigar Agora - Solo muito seco, risco de dano às plantas",
		}
	}
	if rainProbability > highRainProbabilityPct {
		return smart_irrigation.Recommendation{
			Kind:     smart_irrigation.RecommendWaitForRain,
			Severity: smart_irrigation.SeverityWarning,
			Message:  "Aguardar Chuva - Previsão de chuva alta nas próximas horas",
		}
	}
	if moisture < attentionMoisturePct && rainProbability < lowRainProbabilityPct {
		return smart_irrigation.Recommendation{
			Kind:     smart_irrigation.RecommendMonitor,
			Severity: smart_irrigation.SeverityInfo,
			Message:  "Monitorando - Umidade dentro da faixa, continue observando",
		}
	}
	return smart_irrigation.Recommendation{
		Kind:     smart_irrigation.RecommendMonitor,
		Severity: smart_irrigation.SeverityInfo,
		Message:  "Monitorando - Condições ideais, sistema funcionando normalmente",
	}
}

// RecommendCoarse is the older, coarser variant still shipped on one
// dashboard. It folds the forecast away, honors the server status and
// collapses the monitor tiers on the 60% boundary.
func RecommendCoarse(moisture float64, rawStatus string, online bool) smart_irrigation.Recommendation {
	if !online {
		return smart_irrigation.Recommendation{
			Kind:     smart_irrigation.RecommendOfflineAlert,
			Severity: smart_irrigation.SeverityCritical,
			Message:  "🔴 Sensor Offline: O dispositivo não está enviando dados. Verifique a conexão e a alimentação do sensor.",
		}
	}

	status := smart_irrigation.ParseServerStatus(rawStatus)
	if status == smart_irrigation.ServerStatusCritical || moisture < criticalMoisturePct {
		return smart_irrigation.Recommendation{
			Kind:     smart_irrigation.RecommendIrrigateNow,
			Severity: smart_irrigation.SeverityCritical,
			Message:  "⚠️ Irrigação Imediata Necessária! O solo está muito seco. Risco de dano às plantas.",
		}
	}
	if status == smart_irrigation.ServerStatusAttention || moisture < attentionMoisturePct {
		return smart_irrigation.Recommendation{
			Kind:     smart_irrigation.RecommendMonitor,
			Severity: smart_irrigation.SeverityWarning,
			Message:  "💡 Planejar Irrigação: O solo está secando. Recomenda-se irrigar nas próximas 2 horas.",
		}
	}
	return smart_irrigation.Recommendation{
		Kind:     smart_irrigation.RecommendMonitor,
		Severity: smart_irrigation.SeverityInfo,
		Message:  "✅ Condições Ideais: Solo com umidade adequada. Sistema funcionando normalmente.",
	}
}
