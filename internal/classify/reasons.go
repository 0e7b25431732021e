package classify

import (
	"fmt"
	"strings"

	"github.com/verilens/verilens/internal/model"
)

const maxReasons = 5

// SynthesizeReasons produces the ordered, bounded explanation list for a
// verdict. Output is deterministic for identical inputs: a lead sentence
// naming the provider, a confidence-band sentence, fixed signal sentences,
// and an object sentence only when detections exist.
func SynthesizeReasons(verdict model.Verdict, confidence int, objects []string, providerID string) []string {
	name := displayName(providerID)
	reasons := make([]string, 0, maxReasons)

	if verdict == model.VerdictAIGenerated {
		reasons = append(reasons, fmt.Sprintf("'%s' classified this image as AI-generated with %d%% confidence.", name, confidence))
		switch {
		case confidence >= 90:
			reasons = append(reasons, "Very strong AI generation signatures detected — high certainty this is a synthetic image.")
		case confidence >= 75:
			reasons = append(reasons, "Clear patterns consistent with generative model outputs (e.g. diffusion or GAN artifacts).")
		case confidence >= 60:
			reasons = append(reasons, "Moderate AI generation indicators present; some natural characteristics also observed.")
		default:
			reasons = append(reasons, "Weak AI signals detected; the image is borderline but leans toward synthetic origin.")
		}
		reasons = append(reasons, "Texture smoothness, colour uniformity, and pixel coherence are consistent with a generative model.")
		if len(objects) > 0 {
			reasons = append(reasons, fmt.Sprintf("Detected elements (%s) appear synthetically composed rather than naturally captured.", sampleObjects(objects)))
		}
		reasons = append(reasons, "Frequency-domain patterns indicate over-smoothed regions typical of latent diffusion pipelines.")
	} else {
		reasons = append(reasons, fmt.Sprintf("'%s' classified this image as a natural photograph with %d%% confidence.", name, confidence))
		switch {
		case confidence >= 90:
			reasons = append(reasons, "Strong natural photographic characteristics — no significant AI generation artefacts detected.")
		case confidence >= 75:
			reasons = append(reasons, "Image shows natural lighting, sensor noise, and depth-of-field consistent with real photography.")
		case confidence >= 60:
			reasons = append(reasons, "Predominantly natural characteristics, though a small degree of ambiguity remains.")
		default:
			reasons = append(reasons, "Mostly natural image signatures, but some patterns warrant mild scrutiny.")
		}
		reasons = append(reasons, "Sensor noise distribution and tonal range align with authentic camera capture.")
		if len(objects) > 0 {
			reasons = append(reasons, fmt.Sprintf("Real-world objects detected (%s) with spatial relationships typical of natural photography.", sampleObjects(objects)))
		}
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}

// displayName shortens a model identifier like "Ateeqq/ai-vs-human-image-detector"
// to its final path segment for human-readable sentences.
func displayName(providerID string) string {
	if providerID == "" {
		return "AI detection model"
	}
	if idx := strings.LastIndex(providerID, "/"); idx >= 0 && idx < len(providerID)-1 {
		return providerID[idx+1:]
	}
	return providerID
}

// sampleObjects names up to the first three detected objects.
func sampleObjects(objects []string) string {
	if len(objects) > 3 {
		objects = objects[:3]
	}
	return strings.Join(objects, ", ")
}
